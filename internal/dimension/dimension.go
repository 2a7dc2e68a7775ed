/*
PURPOSE:
  Defines the Dimension Registry: named axes of configuration, each with a
  closed, ordered set of variant values. The registry is the sole input to
  the combination generator.

REQUIREMENTS:
  User-specified:
  - Dimensions are immutable and registered before any generation occurs.
  - Must expose an explicit "list all variants of dimension X" operation.

  Implementation-discovered:
  - Ordered iteration matters (generation determinism), so the registry
    keeps a slice, not just a map.
  - Custom dimensions can be declared in YAML config; a Spec struct with
    yaml tags keeps that boundary in one place.

ARCHITECTURE INTEGRATION:
  - Consumed by: internal/generator
  - Used by: internal/cli (dimensions command, config-declared dimensions)

ERROR HANDLING:
  - Lookup misses return ok=false / nil, never errors. Registry construction
    rejects nothing; empty registries simply generate nothing downstream.

IMPLEMENTATION RULES:
  - Never mutate a Dimension after registry construction.
  - Variant tags are stable wire values; do not rename them casually.

USAGE:
  reg := dimension.Default()
  vs := reg.Variants("FormatVariation")

RELATED FILES:
  - internal/dimension/defaults.go - The ten standard dimensions.
  - internal/generator/generator.go - The consumer.

MAINTENANCE:
  - Update defaults.go when adding a standard dimension.
*/

package dimension

// Variant is one named value within a dimension's closed value set.
type Variant string

// Dimension is a named axis of configuration with a fixed, ordered set of
// variant values.
type Dimension struct {
	Name     string
	Variants []Variant
}

// Spec is the YAML-facing form of a dimension, used when custom dimensions
// are declared in a config file.
type Spec struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
}

// Dimension converts a Spec into an immutable Dimension.
func (s Spec) Dimension() Dimension {
	vs := make([]Variant, 0, len(s.Variants))
	for _, v := range s.Variants {
		vs = append(vs, Variant(v))
	}
	return Dimension{Name: s.Name, Variants: vs}
}

// Registry is an ordered, immutable collection of dimensions.
type Registry struct {
	dims   []Dimension
	byName map[string]Dimension
}

// NewRegistry builds a registry from the given dimensions, preserving order.
// A later dimension with a duplicate name replaces the earlier entry.
func NewRegistry(dims ...Dimension) *Registry {
	r := &Registry{byName: make(map[string]Dimension, len(dims))}
	for _, d := range dims {
		if _, exists := r.byName[d.Name]; exists {
			for i := range r.dims {
				if r.dims[i].Name == d.Name {
					r.dims[i] = d
					break
				}
			}
		} else {
			r.dims = append(r.dims, d)
		}
		r.byName[d.Name] = d
	}
	return r
}

// Len returns the number of registered dimensions.
func (r *Registry) Len() int {
	return len(r.dims)
}

// Dimensions returns the registered dimensions in declaration order.
// The returned slice is a copy; callers may not reach the registry's state.
func (r *Registry) Dimensions() []Dimension {
	out := make([]Dimension, len(r.dims))
	copy(out, r.dims)
	return out
}

// Names returns the dimension names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.dims))
	for _, d := range r.dims {
		out = append(out, d.Name)
	}
	return out
}

// Get looks up a dimension by name.
func (r *Registry) Get(name string) (Dimension, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Variants lists all variants of the named dimension in declared order.
// Unknown names yield nil.
func (r *Registry) Variants(name string) []Variant {
	d, ok := r.byName[name]
	if !ok {
		return nil
	}
	out := make([]Variant, len(d.Variants))
	copy(out, d.Variants)
	return out
}

// Extend returns a new registry with the given dimensions appended.
// The receiver is unchanged.
func (r *Registry) Extend(dims ...Dimension) *Registry {
	return NewRegistry(append(r.Dimensions(), dims...)...)
}
