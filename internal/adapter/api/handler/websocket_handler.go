package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"verslohub/internal/adapter/api/middleware"
	"verslohub/internal/domain/entity"
	"verslohub/internal/infrastructure/websocket"
	"verslohub/internal/usecase"
	"verslohub/pkg/errors"
)

type WebSocketHandler struct {
	wsManager      *websocket.Manager
	authMiddleware *middleware.AuthMiddleware
	requestUseCase *usecase.RequestUseCase
	chatUseCase    *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict in production
	},
}

func NewWebSocketHandler(
	wsManager *websocket.Manager,
	authMiddleware *middleware.AuthMiddleware,
	requestUseCase *usecase.RequestUseCase,
	chatUseCase *usecase.ChatUseCase,
) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		requestUseCase: requestUseCase,
		chatUseCase:    chatUseCase,
	}
}

// HandleWebSocket upgrades the connection to a live session. Browsers cannot
// set headers on WebSocket upgrades, so the token arrives as a query
// parameter.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Token is required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := websocket.NewClient(userID, conn)

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager, h.handleFrame)
	go client.WritePump()

	return nil
}

// handleFrame dispatches one client frame. Subscriptions established here
// outlive the frame and are torn down through the client's dispose managers.
func (h *WebSocketHandler) handleFrame(client *websocket.Client, raw []byte) {
	var frame websocket.ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		h.sendError(client, "", "Malformed frame")
		return
	}

	switch frame.Type {
	case websocket.FrameTypePing:
		h.send(client, websocket.ServerFrame{Type: websocket.FrameTypePong})

	case websocket.FrameTypeWatchRequests:
		h.watchRequests(client, frame.Scope)

	case websocket.FrameTypeOpenRequest:
		h.openRequest(client, frame.RequestID)

	case websocket.FrameTypeCloseRequest:
		client.ThreadSubs.DisposeAll()
		client.SetActiveRequest("")

	case websocket.FrameTypeSendMessage:
		h.sendMessage(client, frame.RequestID, frame.Content)

	case websocket.FrameTypeMarkCompleted:
		if err := h.requestUseCase.MarkCompleted(context.Background(), client.UserID, frame.RequestID); err != nil {
			h.sendError(client, frame.RequestID, userMessage(err))
		}

	default:
		h.sendError(client, "", "Unknown frame type")
	}
}

func (h *WebSocketHandler) watchRequests(client *websocket.Client, scope string) {
	userID := client.UserID

	fn := func(requests []*entity.ServiceRequest, err error) {
		if err != nil {
			log.Printf("Request watch for %s failed: %v", userID, err)
			h.sendError(client, "", "Live request feed interrupted")
			return
		}
		h.send(client, websocket.ServerFrame{
			Type:     websocket.FrameTypeRequestSnapshot,
			Requests: requests,
		})
	}

	switch scope {
	case websocket.ScopeRequester:
		disposer := h.requestUseCase.WatchForUser(context.Background(), userID, fn)
		client.ListSubs.Track(disposer)

	case websocket.ScopeOperator:
		// Legacy inbox documents may lack an owner reference; repair them
		// before the live query starts so they show up in the snapshot.
		if _, err := h.requestUseCase.RepairMissingOwner(context.Background(), userID); err != nil {
			h.sendError(client, "", userMessage(err))
			return
		}

		disposer, err := h.requestUseCase.WatchForOperator(context.Background(), userID, fn)
		if err != nil {
			h.sendError(client, "", userMessage(err))
			return
		}
		client.ListSubs.Track(disposer)

	default:
		h.sendError(client, "", "Unknown watch scope")
	}
}

func (h *WebSocketHandler) openRequest(client *websocket.Client, requestID string) {
	if requestID == "" {
		h.sendError(client, "", "Request ID is required")
		return
	}

	// Switching threads: the previous thread's listener must be gone before
	// the new one is established.
	client.ThreadSubs.DisposeAll()
	client.SetActiveRequest(requestID)

	fn := func(messages []*entity.Message, err error) {
		if err != nil {
			log.Printf("Message watch on %s for %s failed: %v", requestID, client.UserID, err)
			h.sendError(client, requestID, "Live message feed interrupted")
			return
		}
		h.send(client, websocket.ServerFrame{
			Type:      websocket.FrameTypeMessageSnapshot,
			RequestID: requestID,
			Messages:  messages,
		})
	}

	disposer, err := h.chatUseCase.WatchMessages(context.Background(), client.UserID, requestID, fn)
	if err != nil {
		client.SetActiveRequest("")
		h.sendError(client, requestID, userMessage(err))
		return
	}
	client.ThreadSubs.Track(disposer)
}

func (h *WebSocketHandler) sendMessage(client *websocket.Client, requestID, content string) {
	message, err := h.chatUseCase.SendMessage(context.Background(), client.UserID, "", requestID, content)
	if err != nil {
		h.sendError(client, requestID, userMessage(err))
		return
	}

	h.send(client, websocket.ServerFrame{
		Type:      websocket.FrameTypeMessageSent,
		RequestID: requestID,
		Message:   message,
	})
}

func (h *WebSocketHandler) send(client *websocket.Client, frame websocket.ServerFrame) {
	h.wsManager.SendToUser(client.UserID, websocket.Encode(frame))
}

func (h *WebSocketHandler) sendError(client *websocket.Client, requestID, message string) {
	h.send(client, websocket.ServerFrame{
		Type:      websocket.FrameTypeError,
		RequestID: requestID,
		Error:     message,
	})
}

// userMessage extracts a presentable message from an error, hiding internal
// detail.
func userMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong"
}
