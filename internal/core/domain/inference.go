package domain

// RequestType distinguishes something broken from something asked for.
type RequestType string

// Available request types.
const (
	RequestTypeIncident RequestType = "incident"
	RequestTypeRequest  RequestType = "request"
)

// String returns the string representation.
func (t RequestType) String() string {
	return string(t)
}

// ScoreResult is the outcome of the category scorer.
type ScoreResult struct {
	Category Category
	Type     RequestType
	Priority Priority

	// Action is the recommended handling for the (category, type, priority) triple.
	Action string

	// Counts holds the number of matching keywords per scored category.
	Counts map[Category]int
}

// InferenceResult is a scored ticket as recorded in a session history.
type InferenceResult struct {
	TicketID string
	Text     string

	ScoreResult

	// Error is set when the ticket could not be processed. All other fields are zero.
	Error string
}

// Failed returns true if the ticket could not be processed.
func (r InferenceResult) Failed() bool {
	return r.Error != ""
}

// SessionStats summarises the history of an inference session.
type SessionStats struct {
	Total      int
	ByCategory map[Category]int
	ByType     map[RequestType]int
	ByPriority map[Priority]int
}
