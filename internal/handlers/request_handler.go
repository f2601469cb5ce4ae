package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bloodbank-backend/internal/middleware"
	"bloodbank-backend/internal/models"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestStore is the storage the request endpoints need.
type RequestStore interface {
	Create(ctx context.Context, req *models.BloodRequest) error
	FindAll(ctx context.Context) ([]models.BloodRequest, error)
	FindByID(ctx context.Context, id uint64) (*models.BloodRequest, error)
	FindByUser(ctx context.Context, userID string) ([]models.BloodRequest, error)
	FindPending(ctx context.Context) ([]models.BloodRequest, error)
	UpdateUserStatus(ctx context.Context, id uint64, status string) (int64, error)
}

type RequestHandler struct {
	store RequestStore
	log   zerolog.Logger
}

func NewRequestHandler(store RequestStore, log zerolog.Logger) *RequestHandler {
	return &RequestHandler{store: store, log: log}
}

// CreateRequest handles POST /api/requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input models.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req := input.ToModel()
	if err := h.store.Create(c.Request.Context(), &req); err != nil {
		h.storageError(c, err, "Failed to save request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Request created successfully",
		"requestId": req.RequestID,
	})
}

// GetRequests handles GET /api/requests. An empty table is a 404 here,
// unlike the filtered lists below which answer with [].
func (h *RequestHandler) GetRequests(c *gin.Context) {
	requests, err := h.store.FindAll(c.Request.Context())
	if err != nil {
		h.storageError(c, err, "Failed to fetch requests")
		return
	}

	if len(requests) == 0 {
		utils.MessageResponse(c, http.StatusNotFound, "No requests available")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetRequestByID handles GET /api/requests/:id.
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.MessageResponse(c, http.StatusNotFound, "Request not found")
		return
	}

	req, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.MessageResponse(c, http.StatusNotFound, "Request not found")
			return
		}
		h.storageError(c, err, "Failed to fetch request")
		return
	}

	c.JSON(http.StatusOK, req)
}

// GetRequestsByUser handles GET /api/requests/user?userId=.
func (h *RequestHandler) GetRequestsByUser(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.MessageResponse(c, http.StatusBadRequest, "userId is required")
		return
	}

	requests, err := h.store.FindByUser(c.Request.Context(), userID)
	if err != nil {
		h.storageError(c, err, "Failed to fetch user requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetPendingRequests handles GET /api/requests/pending.
func (h *RequestHandler) GetPendingRequests(c *gin.Context) {
	requests, err := h.store.FindPending(c.Request.Context())
	if err != nil {
		h.storageError(c, err, "Failed to fetch pending requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// UpdateRequestStatus handles PUT /api/requests/:id. An id that matches no
// row still answers 200, the same as the statement affecting zero rows.
func (h *RequestHandler) UpdateRequestStatus(c *gin.Context) {
	rawID := c.Param("id")

	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil || !models.ValidUserStatus(input.UserStatus) {
		utils.MessageResponse(c, http.StatusBadRequest, "user_status must be approved or rejected")
		return
	}

	var affected int64
	if id, ok := utils.ParseID(rawID); ok {
		n, err := h.store.UpdateUserStatus(c.Request.Context(), id, input.UserStatus)
		if err != nil {
			h.storageError(c, err, "Failed to update request")
			return
		}
		affected = n
	}

	if affected == 0 {
		h.log.Warn().
			Str("request_id", middleware.GetRequestID(c)).
			Str("id", rawID).
			Str("user_status", input.UserStatus).
			Msg("status update matched no rows")
	}

	utils.MessageResponse(c, http.StatusOK, fmt.Sprintf("Request %s updated to status %s", rawID, input.UserStatus))
}

func (h *RequestHandler) storageError(c *gin.Context, err error, message string) {
	h.log.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(c)).
		Str("path", c.FullPath()).
		Msg(message)
	_ = c.Error(err)
	utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
}
