package websocket

import (
	"encoding/json"
	"time"

	"verslohub/internal/domain/entity"
)

// Client-to-server frame types.
const (
	FrameTypePing          = "ping"
	FrameTypeWatchRequests = "watch_requests"
	FrameTypeOpenRequest   = "open_request"
	FrameTypeCloseRequest  = "close_request"
	FrameTypeSendMessage   = "send_message"
	FrameTypeMarkCompleted = "mark_completed"
)

// Server-to-client frame types.
const (
	FrameTypePong            = "pong"
	FrameTypeRequestSnapshot = "request_snapshot"
	FrameTypeMessageSnapshot = "message_snapshot"
	FrameTypeMessageSent     = "message_sent"
	FrameTypeNotification    = "notification"
	FrameTypeError           = "error"
)

// Request-list scopes a client may watch.
const (
	ScopeRequester = "user"
	ScopeOperator  = "vendor"
)

// ClientFrame is what the browser sends over the socket.
type ClientFrame struct {
	Type      string `json:"type"`
	Scope     string `json:"scope,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// ServerFrame is what the server pushes.
type ServerFrame struct {
	Type      string                   `json:"type"`
	RequestID string                   `json:"request_id,omitempty"`
	Requests  []*entity.ServiceRequest `json:"requests,omitempty"`
	Messages  []*entity.Message        `json:"messages,omitempty"`
	Message   *entity.Message          `json:"message,omitempty"`
	Error     string                   `json:"error,omitempty"`
	Timestamp string                   `json:"timestamp"`
}

// Encode marshals a server frame, stamping it on the way out.
func Encode(frame ServerFrame) []byte {
	frame.Timestamp = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(frame)
	if err != nil {
		// Frames are built from plain structs; marshalling cannot fail with
		// well-formed input, so degrade to a bare error frame.
		return []byte(`{"type":"error","error":"internal encoding failure"}`)
	}
	return data
}
