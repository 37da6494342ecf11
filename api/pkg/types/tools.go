package types

type ToolSelectionMethod string

const (
	ToolSelectionMethodDirect   ToolSelectionMethod = "direct"
	ToolSelectionMethodSemantic ToolSelectionMethod = "semantic_retrieval"
)

// ToolSelectionConfig controls which skills are exposed for one chat turn.
// MaxTools of zero means no cap.
type ToolSelectionConfig struct {
	Method        ToolSelectionMethod `json:"method"`
	MaxTools      int                 `json:"max_tools,omitempty"`
	SemanticQuery string              `json:"semantic_query,omitempty"`
}
