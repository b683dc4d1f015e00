package contract

type ReportStatus string

const (
	ReportSuccess ReportStatus = "success"
	ReportError   ReportStatus = "error"
)

// DeadlineReport is either a success carrying Report or an error carrying
// ErrorMessage, never both.
type DeadlineReport struct {
	Status       ReportStatus `json:"status"`
	Report       string       `json:"report,omitempty"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

func (r DeadlineReport) OK() bool {
	return r.Status == ReportSuccess
}

type ToolRequest struct {
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Reply struct {
	Message     string       `json:"message"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
	Steps       int          `json:"steps"`
}
