package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"verslohub/internal/usecase"
	"verslohub/pkg/errors"
	"verslohub/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, err := h.notificationUseCase.ListForUser(c.Request().Context(), userID, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	notificationID := c.Param("id")

	if notificationID == "" {
		return response.Error(c, errors.BadRequest("Notification ID is required", nil))
	}

	if err := h.notificationUseCase.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Notification marked as read",
	})
}
