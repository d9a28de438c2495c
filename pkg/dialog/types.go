// ABOUTME: Core types for the dialog client: event kinds, wire payloads, sampling
// ABOUTME: Wire structs mirror the backend's JSON request/response bodies

package dialog

// Event kinds delivered by the streaming endpoint. Anything else (including
// the framing-level default "message") is ignored by the router.
const (
	KindMeta   = "meta"
	KindReason = "reason"
	KindAnswer = "answer"
	KindError  = "error"
	KindDone   = "done"
)

// Event is one semantically complete unit parsed from the response stream.
type Event struct {
	Kind    string
	Payload string
}

// SamplingParams are forwarded verbatim to the streaming endpoint.
type SamplingParams struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// Card is one item of the optional context card list sent along with the
// initialization handshake. The backend accepts zero or three cards.
type Card struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// HistoryEntry is one past exchange returned by the history endpoint.
type HistoryEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// initRequest is the body of POST /api/dialog/init.
type initRequest struct {
	RuntimeID string `json:"runtime_id"`
	DialogID  string `json:"dialog_id"`
	Cards     []Card `json:"cards"`
}

// initResponse is the acknowledgement of the initialization handshake.
type initResponse struct {
	OK       bool   `json:"ok"`
	DialogID string `json:"dialog_id"`
	Error    string `json:"error"`
}

// chatRequest is the body of POST /api/chat/stream.
type chatRequest struct {
	RuntimeID   string  `json:"runtime_id"`
	DialogID    string  `json:"dialog_id"`
	UserText    string  `json:"user_text"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// stopRequest is the body of the best-effort POST /api/chat/stop.
type stopRequest struct {
	RuntimeID string `json:"runtime_id"`
	DialogID  string `json:"dialog_id"`
}

// historyResponse is the body of GET /api/history.
type historyResponse struct {
	History []HistoryEntry `json:"history"`
}
