/*
PURPOSE:
  Generates N-way dimension combinations: every k-sized subset of the
  registered dimensions crossed with the product of their variant values,
  with optional per-dimension caps, a total ceiling, and random sampling
  for tractable smoke runs.

REQUIREMENTS:
  User-specified:
  - Subset enumeration and cross products must be fully deterministic for a
    given cap, independent of run order.
  - Malformed inputs (k < 2, k > dimension count, empty registry) degrade to
    empty output, never errors.
  - maxTotal is a hard ceiling checked after appending a whole subset's
    output, never mid-subset.

  Implementation-discovered:
  - Sampling needs a seedable source; the Rand field makes runs reproducible
    when tests or the CLI fix a seed, and falls back to a time seed.

ARCHITECTURE INTEGRATION:
  - Consumes: internal/dimension (read-only registry)
  - Produces: model.Combination values owned by the caller
  - Called by: internal/cli

ERROR HANDLING:
  - No error paths. Generation is defensive: out-of-range sizes yield empty
    slices so batch callers can iterate ranges blindly.

IMPLEMENTATION RULES:
  - Generation is pure, synchronous computation; never parallelize it.
  - Per-dimension truncation takes the first cap variants in declared order;
    no random truncation here.

USAGE:
  g := generator.New(dimension.Default(), 2, 3)
  bySize := g.AllCombinations(2, 0)

RELATED FILES:
  - internal/model/types.go - Combination and its canonical key.
  - internal/executor/executor.go - Runs the generated combinations.

MAINTENANCE:
  - Keep SubsetsOfSize in registry order; the reporter relies on stable keys.
*/

package generator

import (
	"math/rand"
	"time"

	"github.com/daryltucker/grumpi-miner/internal/dimension"
	"github.com/daryltucker/grumpi-miner/internal/model"
)

// Generator enumerates dimension subsets and their value combinations over
// an immutable registry.
type Generator struct {
	Registry *dimension.Registry
	// MinSize and MaxSize bound the subset sizes, inclusive. New clamps
	// MinSize to at least 2 and MaxSize to the registry length.
	MinSize int
	MaxSize int
	// Rand drives SampleCombinations. nil means a time-seeded source is
	// created on first use; set it to make sampling reproducible.
	Rand *rand.Rand
}

// New creates a generator over reg for subset sizes [minSize, maxSize].
// maxSize <= 0 means "all dimensions". Bounds are clamped, mirroring the
// defensive contract of the generation methods.
func New(reg *dimension.Registry, minSize, maxSize int) *Generator {
	if minSize < 2 {
		minSize = 2
	}
	if maxSize <= 0 || maxSize > reg.Len() {
		maxSize = reg.Len()
	}
	return &Generator{Registry: reg, MinSize: minSize, MaxSize: maxSize}
}

// SubsetsOfSize returns all size-k subsets of the registered dimensions, in
// registry order. k < 2 or k > dimension count yields an empty result.
func (g *Generator) SubsetsOfSize(k int) [][]dimension.Dimension {
	dims := g.Registry.Dimensions()
	if k < 2 || k > len(dims) {
		return nil
	}

	var out [][]dimension.Dimension
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]dimension.Dimension, k)
		for i, j := range idx {
			subset[i] = dims[j]
		}
		out = append(out, subset)

		// Advance the combination indices, rightmost first.
		i := k - 1
		for i >= 0 && idx[i] == len(dims)-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}

// DimensionPairs returns every pair of registered dimensions.
func (g *Generator) DimensionPairs() [][]dimension.Dimension {
	return g.SubsetsOfSize(2)
}

// CombinationsFor returns the cross product of variant values for the given
// dimension subset. capPerDimension > 0 truncates each dimension to its
// first capPerDimension variants, preserving declared order. The result size
// is the product of the (capped or full) variant counts.
func (g *Generator) CombinationsFor(subset []dimension.Dimension, capPerDimension int) []model.Combination {
	if len(subset) == 0 {
		return nil
	}

	values := make([][]dimension.Variant, len(subset))
	total := 1
	for i, d := range subset {
		vs := d.Variants
		if capPerDimension > 0 && len(vs) > capPerDimension {
			vs = vs[:capPerDimension]
		}
		if len(vs) == 0 {
			return nil
		}
		values[i] = vs
		total *= len(vs)
	}

	out := make([]model.Combination, 0, total)
	idx := make([]int, len(subset))
	for {
		c := make(model.Combination, len(subset))
		for i, d := range subset {
			c[d.Name] = values[i][idx[i]]
		}
		out = append(out, c)

		// Odometer increment over the value indices.
		i := len(idx) - 1
		for i >= 0 {
			idx[i]++
			if idx[i] < len(values[i]) {
				break
			}
			idx[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}
	return out
}

// AllCombinations generates combinations for every subset size from MinSize
// through MaxSize, keyed by size. maxTotal > 0 is a hard ceiling across all
// sizes: generation stops once the total crosses it, but the subset batch
// that crosses it is included in full.
func (g *Generator) AllCombinations(capPerDimension, maxTotal int) map[int][]model.Combination {
	results := make(map[int][]model.Combination)
	total := 0

	for size := g.MinSize; size <= g.MaxSize; size++ {
		results[size] = nil
		for _, subset := range g.SubsetsOfSize(size) {
			combos := g.CombinationsFor(subset, capPerDimension)
			results[size] = append(results[size], combos...)
			total += len(combos)
			if maxTotal > 0 && total >= maxTotal {
				return results
			}
		}
	}
	return results
}

// SampleCombinations draws, for each subset size, up to samplesPerSize
// dimension subsets uniformly at random without replacement, and builds one
// combination per sampled subset using each dimension's first variant.
func (g *Generator) SampleCombinations(samplesPerSize int) map[int][]model.Combination {
	rng := g.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		g.Rand = rng
	}

	results := make(map[int][]model.Combination)
	for size := g.MinSize; size <= g.MaxSize; size++ {
		subsets := g.SubsetsOfSize(size)
		n := samplesPerSize
		if n > len(subsets) {
			n = len(subsets)
		}
		if n < 0 {
			n = 0
		}

		sampled := make([]model.Combination, 0, n)
		for _, i := range rng.Perm(len(subsets))[:n] {
			combos := g.CombinationsFor(subsets[i], 1)
			if len(combos) > 0 {
				sampled = append(sampled, combos[0])
			}
		}
		results[size] = sampled
	}
	return results
}
