package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forgefit/forgefit-backend/internal/requestdata"
	"github.com/forgefit/forgefit-backend/internal/services"
)

type PlanHandler struct {
	planService services.PlanGenerationService
}

func NewPlanHandler(planService services.PlanGenerationService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// POST /api/plans/generate
func (ph *PlanHandler) GeneratePlan(c *gin.Context) {
	var req services.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// The authenticated user generates plans for themselves; the body's
	// userId is filled in from the token when omitted.
	if req.UserID == "" {
		if userID := requestdata.UserID(c.Request.Context()); userID != uuid.Nil {
			req.UserID = userID.String()
		}
	}

	summary, err := ph.planService.GeneratePlan(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Workout plan generated successfully",
		"plan":    summary,
	})
}

// GET /api/plans
func (ph *PlanHandler) ListPlans(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return
	}
	plans, err := ph.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}
