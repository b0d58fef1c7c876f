package model

// ChatRequest is the body of both chat endpoints. Message is decoded as
// an untyped value so handlers can reject non-string payloads explicitly.
type ChatRequest struct {
	Message any `json:"message"`
}

// MessageString returns the message when it is a present, non-empty string.
func (r ChatRequest) MessageString() (string, bool) {
	s, ok := r.Message.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// ChatResponse is the success payload of both chat endpoints.
type ChatResponse struct {
	ThreadID string `json:"threadId"`
	Response string `json:"response"`
	Status   string `json:"status"`
}

// StatusSuccess is the status value returned on every successful chat call.
const StatusSuccess = "success"
