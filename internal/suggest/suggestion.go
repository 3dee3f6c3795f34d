package suggest

type Source string

const (
	SourceRule Source = "rule"
	SourceAI   Source = "ai"
)

// Suggestion is a single care recommendation shown on the today screen.
// ID is stable within its originating source.
type Suggestion struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Source Source `json:"source"`
}

// InsightsResponse is the optional AI-generated suggestion batch for one
// calendar date. A nil pointer means the batch is unavailable (no network,
// no provider configured, malformed payload) and merging degrades to
// rule suggestions only.
type InsightsResponse struct {
	Date        string       `json:"date"`
	Cached      bool         `json:"cached"`
	Suggestions []Suggestion `json:"suggestions"`
}
