package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/grumpi-miner/internal/dimension"
)

// variants builds n synthetic variant tags v0..v(n-1).
func variants(n int) []dimension.Variant {
	out := make([]dimension.Variant, n)
	for i := range out {
		out[i] = dimension.Variant(string(rune('a'+i)) + "_variant")
	}
	return out
}

func registryOf(sizes ...int) *dimension.Registry {
	dims := make([]dimension.Dimension, len(sizes))
	for i, n := range sizes {
		dims[i] = dimension.Dimension{
			Name:     string(rune('A' + i)),
			Variants: variants(n),
		}
	}
	return dimension.NewRegistry(dims...)
}

func TestNew_ClampsBounds(t *testing.T) {
	reg := dimension.Default()

	tests := []struct {
		name             string
		min, max         int
		wantMin, wantMax int
	}{
		{"defaults", 2, 0, 2, 10},
		{"min below two", 0, 3, 2, 3},
		{"max beyond registry", 2, 99, 2, 10},
		{"explicit range", 3, 5, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(reg, tt.min, tt.max)
			assert.Equal(t, tt.wantMin, g.MinSize)
			assert.Equal(t, tt.wantMax, g.MaxSize)
		})
	}
}

func TestSubsetsOfSize(t *testing.T) {
	g := New(dimension.Default(), 2, 0)

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"pairs C(10,2)", 2, 45},
		{"triples C(10,3)", 3, 120},
		{"all ten C(10,10)", 10, 1},
		{"k below minimum", 1, 0},
		{"k above dimension count", 11, 0},
		{"negative k", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subsets := g.SubsetsOfSize(tt.k)
			assert.Len(t, subsets, tt.want)
			for _, s := range subsets {
				assert.Len(t, s, tt.k)
			}
		})
	}
}

func TestSubsetsOfSize_Deterministic(t *testing.T) {
	g := New(dimension.Default(), 2, 0)

	first := g.SubsetsOfSize(3)
	second := g.SubsetsOfSize(3)

	require.Equal(t, len(first), len(second))
	for i := range first {
		for j := range first[i] {
			assert.Equal(t, first[i][j].Name, second[i][j].Name)
		}
	}
}

func TestDimensionPairs(t *testing.T) {
	g := New(dimension.Default(), 2, 0)
	assert.Len(t, g.DimensionPairs(), 45)
}

func TestCombinationsFor(t *testing.T) {
	reg := registryOf(8, 6)
	g := New(reg, 2, 0)
	subset := reg.Dimensions()

	tests := []struct {
		name string
		cap  int
		want int
	}{
		{"no cap is full product", 0, 48},
		{"cap two", 2, 4},
		{"cap one", 1, 1},
		{"cap beyond variant count", 100, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combos := g.CombinationsFor(subset, tt.cap)
			assert.Len(t, combos, tt.want)
			for _, c := range combos {
				assert.Equal(t, 2, c.Size())
			}
		})
	}
}

func TestCombinationsFor_CapPreservesDeclaredOrder(t *testing.T) {
	reg := registryOf(4, 3)
	g := New(reg, 2, 0)

	combos := g.CombinationsFor(reg.Dimensions(), 1)
	require.Len(t, combos, 1)

	// The single combination uses each dimension's first declared variant.
	a, _ := reg.Get("A")
	b, _ := reg.Get("B")
	assert.Equal(t, a.Variants[0], combos[0]["A"])
	assert.Equal(t, b.Variants[0], combos[0]["B"])
}

func TestCombinationsFor_EmptySubset(t *testing.T) {
	g := New(dimension.Default(), 2, 0)
	assert.Empty(t, g.CombinationsFor(nil, 0))
}

func TestCombinationsFor_KeysDistinct(t *testing.T) {
	reg := registryOf(5, 4, 3)
	g := New(reg, 2, 0)

	combos := g.CombinationsFor(reg.Dimensions(), 0)
	require.Len(t, combos, 60)

	seen := make(map[string]bool, len(combos))
	for _, c := range combos {
		key := c.Key()
		assert.False(t, seen[key], "duplicate canonical key %s", key)
		seen[key] = true
	}
}

func TestAllCombinations(t *testing.T) {
	reg := registryOf(3, 3, 3)
	g := New(reg, 2, 3)

	bySize := g.AllCombinations(0, 0)

	require.Contains(t, bySize, 2)
	require.Contains(t, bySize, 3)
	// C(3,2)=3 subsets of 3x3=9 combinations each.
	assert.Len(t, bySize[2], 27)
	// One subset of 3x3x3.
	assert.Len(t, bySize[3], 27)

	for size, combos := range bySize {
		for _, c := range combos {
			assert.Equal(t, size, c.Size())
		}
	}
}

func TestAllCombinations_PerSizeKeysDistinct(t *testing.T) {
	g := New(dimension.Default(), 2, 2)
	bySize := g.AllCombinations(2, 0)

	seen := make(map[string]bool)
	for _, c := range bySize[2] {
		key := c.Key()
		assert.False(t, seen[key], "duplicate key %s within size group", key)
		seen[key] = true
	}
}

func TestAllCombinations_CeilingIsPostSubset(t *testing.T) {
	// Three dimensions of three variants: each pair subset yields 9.
	reg := registryOf(3, 3, 3)
	g := New(reg, 2, 2)

	bySize := g.AllCombinations(0, 10)

	// The ceiling of 10 is crossed inside the second subset batch; the
	// batch is still included in full, so exactly 2*9 combinations emerge.
	assert.Len(t, bySize[2], 18)
}

func TestAllCombinations_CeilingStopsLaterSizes(t *testing.T) {
	reg := registryOf(2, 2, 2)
	g := New(reg, 2, 3)

	bySize := g.AllCombinations(0, 1)

	// First pair subset (4 combos) crosses the ceiling immediately.
	assert.Len(t, bySize[2], 4)
	_, ok := bySize[3]
	assert.False(t, ok, "size 3 must not be generated after the ceiling")
}

func TestAllCombinations_EmptyRegistry(t *testing.T) {
	g := New(dimension.NewRegistry(), 2, 0)
	bySize := g.AllCombinations(0, 0)
	assert.Empty(t, bySize)
}

func TestSampleCombinations(t *testing.T) {
	g := New(dimension.Default(), 2, 2)
	g.Rand = rand.New(rand.NewSource(1))

	samples := g.SampleCombinations(5)

	require.Contains(t, samples, 2)
	// At most 5 of the 45 available pair subsets.
	assert.Len(t, samples[2], 5)
	for _, c := range samples[2] {
		assert.Equal(t, 2, c.Size())
	}
}

func TestSampleCombinations_WithoutReplacement(t *testing.T) {
	g := New(dimension.Default(), 2, 2)
	g.Rand = rand.New(rand.NewSource(7))

	samples := g.SampleCombinations(45)

	// Asking for every available subset must yield each exactly once.
	require.Len(t, samples[2], 45)
	seen := make(map[string]bool)
	for _, c := range samples[2] {
		key := c.Key()
		assert.False(t, seen[key], "subset sampled twice: %s", key)
		seen[key] = true
	}
}

func TestSampleCombinations_BoundedByAvailableSubsets(t *testing.T) {
	reg := registryOf(2, 2, 2)
	g := New(reg, 2, 3)
	g.Rand = rand.New(rand.NewSource(3))

	samples := g.SampleCombinations(50)

	assert.Len(t, samples[2], 3) // C(3,2)
	assert.Len(t, samples[3], 1) // C(3,3)
}

func TestSampleCombinations_SeedReproducible(t *testing.T) {
	keysWithSeed := func(seed int64) []string {
		g := New(dimension.Default(), 2, 3)
		g.Rand = rand.New(rand.NewSource(seed))
		var keys []string
		for _, combos := range g.SampleCombinations(5) {
			for _, c := range combos {
				keys = append(keys, c.Key())
			}
		}
		return keys
	}

	assert.Equal(t, keysWithSeed(42), keysWithSeed(42))
}
