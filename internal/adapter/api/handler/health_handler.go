package handler

import (
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	firestoreClient *firestore.Client
}

var healthHandler *HealthHandler

func NewHealthHandler(firestoreClient *firestore.Client) *HealthHandler {
	return &HealthHandler{
		firestoreClient: firestoreClient,
	}
}

func SetupHealthHandler(firestoreClient *firestore.Client) {
	healthHandler = NewHealthHandler(firestoreClient)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckStoreHealth(c echo.Context) error {
	ctx := c.Request().Context()

	iter := h.firestoreClient.Collections(ctx)
	if _, err := iter.GetAll(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Firestore connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Firestore connected successfully",
	})
}
