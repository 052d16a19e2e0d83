// Package handlers contains the gin route handlers for the matching API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/pkg/core/matching"
	"github.com/bhyulljz/rakt-matching/pkg/core/model"
	"github.com/bhyulljz/rakt-matching/pkg/core/services"
	"github.com/bhyulljz/rakt-matching/pkg/db"
)

// Store defines the database operations the handlers depend on
type Store interface {
	services.MatchAllStore
	GetRecipientRequests(ctx context.Context) ([]model.RecipientRequest, error)
	InsertDonor(ctx context.Context, donor model.DonorProfile) error
	InsertRecipientRequest(ctx context.Context, request model.RecipientRequest, status string) error
	GetMatchRuns(ctx context.Context, requestID string) ([]db.MatchRun, error)
}

// Handler contains dependencies for the route handlers
type Handler struct {
	Store     Store
	Predictor services.Predictor
	Engine    *matching.Engine
	Logger    *zap.Logger
}

// RegisterRoutes attaches all routes to the router
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/match", h.MatchInline)
		api.GET("/donors", h.ListDonors)
		api.POST("/donors", h.RegisterDonor)
		api.GET("/requests", h.ListRequests)
		api.POST("/requests", h.AddRequest)
		api.POST("/requests/:id/match", h.MatchStoredRequest)
		api.GET("/requests/:id/runs", h.ListRuns)
	}
}

// Health reports service status
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"strategy": h.Engine.Strategy().Name(),
	})
}

// matchInlineInput is the payload for ad-hoc matching without stored records
type matchInlineInput struct {
	RecipientRequest model.RecipientRequest `json:"recipientRequest"`
	AvailableDonors  []model.DonorProfile   `json:"availableDonors"`
}

// MatchInline scores a donor pool supplied in the request body. Nothing is
// read from or written to the database.
func (h *Handler) MatchInline(c *gin.Context) {
	var input matchInlineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !input.RecipientRequest.BloodType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blood type"})
		return
	}

	response := h.Engine.Match(input.RecipientRequest, input.AvailableDonors)
	c.JSON(http.StatusOK, response)
}

// MatchStoredRequest runs the full matching pipeline for a stored request
func (h *Handler) MatchStoredRequest(c *gin.Context) {
	requestID := c.Param("id")
	dryRun := c.Query("dryRun") == "true"

	outcome, err := services.MatchRequest(c.Request.Context(), h.Store, h.Predictor, h.Engine, h.Logger, requestID, dryRun)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		h.Logger.Error("Match failed", zap.String("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "matching failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":        outcome.Response,
		"predictorUsed": outcome.PredictorUsed,
		"runId":         outcome.RunID,
	})
}

// ListDonors returns every registered donor
func (h *Handler) ListDonors(c *gin.Context) {
	donors, err := h.Store.GetDonors(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to list donors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list donors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donors": donors, "count": len(donors)})
}

// RegisterDonor validates and stores a donor profile
func (h *Handler) RegisterDonor(c *gin.Context) {
	var donor model.DonorProfile
	if err := c.ShouldBindJSON(&donor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := services.RegisterDonor(c.Request.Context(), h.Store, h.Logger, donor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// ListRequests returns recipient requests, active only unless all=true
func (h *Handler) ListRequests(c *gin.Context) {
	ctx := c.Request.Context()

	var requests []model.RecipientRequest
	var err error
	if c.Query("all") == "true" {
		requests, err = h.Store.GetRecipientRequests(ctx)
	} else {
		requests, err = h.Store.GetActiveRecipientRequests(ctx)
	}
	if err != nil {
		h.Logger.Error("Failed to list requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

// AddRequest stores a new recipient request
func (h *Handler) AddRequest(c *gin.Context) {
	var request model.RecipientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if !request.BloodType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blood type"})
		return
	}
	if !request.Urgency.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid urgency"})
		return
	}
	if request.Units < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "units must be at least 1"})
		return
	}

	if err := h.Store.InsertRecipientRequest(c.Request.Context(), request, db.RequestStatusActive); err != nil {
		h.Logger.Error("Failed to insert request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to insert request"})
		return
	}

	c.JSON(http.StatusCreated, request)
}

// ListRuns returns the persisted match runs for a request
func (h *Handler) ListRuns(c *gin.Context) {
	runs, err := h.Store.GetMatchRuns(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.Error("Failed to list match runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list match runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}
