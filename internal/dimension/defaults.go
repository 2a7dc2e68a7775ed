package dimension

// Standard dimension names.
const (
	FormatVariation          = "FormatVariation"
	StructuralArchitecture   = "StructuralArchitecture"
	ModelOrchestration       = "ModelOrchestration"
	ContextRepresentation    = "ContextRepresentation"
	InstructionSemantics     = "InstructionSemantics"
	VerificationProtocol     = "VerificationProtocol"
	MetaCognitiveScaffolding = "MetaCognitiveScaffolding"
	ConstraintArchitecture   = "ConstraintArchitecture"
	CrossModalTranslation    = "CrossModalTranslation"
	TemporalDynamics         = "TemporalDynamics"
)

// displayNames maps dimension names to human-readable labels.
var displayNames = map[string]string{
	FormatVariation:          "Format Variation",
	StructuralArchitecture:   "Structural Architecture",
	ModelOrchestration:       "Model Orchestration",
	ContextRepresentation:    "Context Representation",
	InstructionSemantics:     "Instruction Semantics",
	VerificationProtocol:     "Verification Protocol",
	MetaCognitiveScaffolding: "Meta-Cognitive Scaffolding",
	ConstraintArchitecture:   "Constraint Architecture",
	CrossModalTranslation:    "Cross-Modal Translation",
	TemporalDynamics:         "Temporal Dynamics",
}

// DisplayName returns the human-readable label for a dimension name, or the
// name itself when no label is registered.
func DisplayName(name string) string {
	if label, ok := displayNames[name]; ok {
		return label
	}
	return name
}

// Default returns the registry of the ten standard complexity dimensions.
// Variant tags are stable identifiers; they appear verbatim in canonical
// combination keys and serialized results.
func Default() *Registry {
	return NewRegistry(
		Dimension{Name: FormatVariation, Variants: []Variant{
			"natural_language", "xml", "json", "yaml", "code", "latex", "diagrams", "hybrid",
		}},
		Dimension{Name: StructuralArchitecture, Variants: []Variant{
			"flat", "hierarchical", "graph", "tree", "mesh", "layered",
		}},
		Dimension{Name: ModelOrchestration, Variants: []Variant{
			"single", "sequential", "parallel", "hierarchical", "ensemble", "cascading",
		}},
		Dimension{Name: ContextRepresentation, Variants: []Variant{
			"minimal", "extended", "contextual", "global", "windowed", "dynamic",
		}},
		Dimension{Name: InstructionSemantics, Variants: []Variant{
			"imperative", "declarative", "functional", "constraint_based", "goal_oriented", "example_based",
		}},
		Dimension{Name: VerificationProtocol, Variants: []Variant{
			"none", "basic", "comprehensive", "formal", "statistical", "heuristic",
		}},
		Dimension{Name: MetaCognitiveScaffolding, Variants: []Variant{
			"none", "reflection", "planning", "monitoring", "evaluation", "adaptive",
		}},
		Dimension{Name: ConstraintArchitecture, Variants: []Variant{
			"unconstrained", "soft", "hard", "adaptive", "hierarchical", "negotiable",
		}},
		Dimension{Name: CrossModalTranslation, Variants: []Variant{
			"none", "text_to_code", "code_to_text", "diagram_to_text", "text_to_diagram", "multimodal",
		}},
		Dimension{Name: TemporalDynamics, Variants: []Variant{
			"static", "sequential", "concurrent", "real_time", "adaptive", "predictive",
		}},
	)
}
