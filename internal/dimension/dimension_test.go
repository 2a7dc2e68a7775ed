package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	assert.Equal(t, 10, reg.Len())

	// Registry order matches declaration order.
	names := reg.Names()
	require.Len(t, names, 10)
	assert.Equal(t, FormatVariation, names[0])
	assert.Equal(t, TemporalDynamics, names[9])

	// Every dimension has a closed, non-empty variant set.
	for _, d := range reg.Dimensions() {
		assert.NotEmpty(t, d.Variants, "dimension %s has no variants", d.Name)
	}
}

func TestRegistry_Variants(t *testing.T) {
	reg := Default()

	tests := []struct {
		name      string
		dimension string
		want      int
		first     Variant
	}{
		{"format variation", FormatVariation, 8, "natural_language"},
		{"structural architecture", StructuralArchitecture, 6, "flat"},
		{"verification protocol", VerificationProtocol, 6, "none"},
		{"unknown dimension", "NoSuchDimension", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := reg.Variants(tt.dimension)
			assert.Len(t, vs, tt.want)
			if tt.want > 0 {
				assert.Equal(t, tt.first, vs[0])
			}
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	reg := Default()

	d, ok := reg.Get(ModelOrchestration)
	require.True(t, ok)
	assert.Equal(t, ModelOrchestration, d.Name)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_VariantsReturnsCopy(t *testing.T) {
	reg := Default()

	vs := reg.Variants(FormatVariation)
	vs[0] = "mutated"

	assert.Equal(t, Variant("natural_language"), reg.Variants(FormatVariation)[0])
}

func TestRegistry_Extend(t *testing.T) {
	base := Default()
	extended := base.Extend(Dimension{Name: "ErrorRecovery", Variants: []Variant{"none", "retry"}})

	assert.Equal(t, 10, base.Len(), "receiver must be unchanged")
	assert.Equal(t, 11, extended.Len())
	assert.Equal(t, []Variant{"none", "retry"}, extended.Variants("ErrorRecovery"))
}

func TestNewRegistry_DuplicateNameReplaces(t *testing.T) {
	reg := NewRegistry(
		Dimension{Name: "A", Variants: []Variant{"x"}},
		Dimension{Name: "B", Variants: []Variant{"y"}},
		Dimension{Name: "A", Variants: []Variant{"z"}},
	)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []Variant{"z"}, reg.Variants("A"))
	assert.Equal(t, []string{"A", "B"}, reg.Names())
}

func TestSpec_Dimension(t *testing.T) {
	spec := Spec{Name: "Custom", Variants: []string{"a", "b"}}
	d := spec.Dimension()

	assert.Equal(t, "Custom", d.Name)
	assert.Equal(t, []Variant{"a", "b"}, d.Variants)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Format Variation", DisplayName(FormatVariation))
	assert.Equal(t, "Meta-Cognitive Scaffolding", DisplayName(MetaCognitiveScaffolding))
	assert.Equal(t, "Custom", DisplayName("Custom"))
}
