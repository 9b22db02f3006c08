package handler

import (
	"github.com/labstack/echo/v4"

	"verslohub/internal/usecase"
	"verslohub/pkg/errors"
	"verslohub/pkg/response"
)

type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
	chatUseCase    *usecase.ChatUseCase
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase, chatUseCase *usecase.ChatUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
		chatUseCase:    chatUseCase,
	}
}

type submitRequestBody struct {
	VendorID      string `json:"vendor_id" validate:"required"`
	Subject       string `json:"subject" validate:"required,min=3,max=200"`
	Details       string `json:"details" validate:"required,min=10,max=5000"`
	Urgency       string `json:"urgency" validate:"required,oneof=high normal low"`
	ContactMethod string `json:"contact_method" validate:"required,oneof=email phone"`
	RequesterName string `json:"requester_name" validate:"max=200"`
}

type respondRequestBody struct {
	ResponseText string `json:"response_text" validate:"required,min=1,max=5000"`
}

type sendMessageBody struct {
	Content    string `json:"content" validate:"required,min=1,max=2000"`
	SenderName string `json:"sender_name" validate:"max=200"`
}

func (h *RequestHandler) SubmitRequest(c echo.Context) error {
	var req submitRequestBody
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	request, err := h.requestUseCase.Submit(c.Request().Context(), userID, req.RequesterName, usecase.SubmitRequestInput{
		VendorID:      req.VendorID,
		Subject:       req.Subject,
		Details:       req.Details,
		Urgency:       req.Urgency,
		ContactMethod: req.ContactMethod,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

// ListMyRequests returns requests the caller filed.
func (h *RequestHandler) ListMyRequests(c echo.Context) error {
	userID := c.Get("uid").(string)

	requests, err := h.requestUseCase.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

// ListInbox returns requests addressed to the caller's vendors.
func (h *RequestHandler) ListInbox(c echo.Context) error {
	userID := c.Get("uid").(string)

	requests, err := h.requestUseCase.ListForOperator(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	userID := c.Get("uid").(string)
	requestID := c.Param("id")

	if requestID == "" {
		return response.Error(c, errors.BadRequest("Request ID is required", nil))
	}

	request, err := h.requestUseCase.GetByID(c.Request().Context(), userID, requestID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *RequestHandler) Respond(c echo.Context) error {
	var req respondRequestBody
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	requestID := c.Param("id")

	if err := h.requestUseCase.Respond(c.Request().Context(), userID, requestID, req.ResponseText); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Response recorded successfully",
	})
}

func (h *RequestHandler) MarkCompleted(c echo.Context) error {
	userID := c.Get("uid").(string)
	requestID := c.Param("id")

	if err := h.requestUseCase.MarkCompleted(c.Request().Context(), userID, requestID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Request marked as completed",
	})
}

func (h *RequestHandler) RejectRequest(c echo.Context) error {
	userID := c.Get("uid").(string)
	requestID := c.Param("id")

	if err := h.requestUseCase.Reject(c.Request().Context(), userID, requestID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Request rejected",
	})
}

// RepairInbox backfills missing owner references on the caller's inbox.
func (h *RequestHandler) RepairInbox(c echo.Context) error {
	userID := c.Get("uid").(string)

	repaired, err := h.requestUseCase.RepairMissingOwner(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"repaired": repaired,
	})
}

func (h *RequestHandler) ListMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	requestID := c.Param("id")

	messages, err := h.chatUseCase.ListMessages(c.Request().Context(), userID, requestID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *RequestHandler) SendMessage(c echo.Context) error {
	var req sendMessageBody
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	requestID := c.Param("id")

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, req.SenderName, requestID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
