package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forgefit/forgefit-backend/internal/apierr"
	"github.com/forgefit/forgefit-backend/internal/services"
)

type stubPlanService struct {
	summary *services.PlanSummary
	plans   []services.PlanListItem
	err     error
	lastReq *services.GeneratePlanRequest
}

func (s *stubPlanService) GeneratePlan(ctx context.Context, req *services.GeneratePlanRequest) (*services.PlanSummary, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func (s *stubPlanService) ListPlans(ctx context.Context, userID uuid.UUID) ([]services.PlanListItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.plans, nil
}

func newPlanRouter(stub *stubPlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPlanHandler(stub)
	r.POST("/api/plans/generate", h.GeneratePlan)
	r.GET("/api/plans", h.ListPlans)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func TestGeneratePlanSuccessContract(t *testing.T) {
	planID := uuid.New()
	stub := &stubPlanService{summary: &services.PlanSummary{
		ID:          planID,
		Description: "Strength block",
		Difficulty:  "intermediate",
		Workouts:    3,
	}}
	r := newPlanRouter(stub)

	body := fmt.Sprintf(`{"userId":%q,"goalType":"strength","workoutType":"strength","durationWeeks":8,"daysPerWeek":3,"focusMuscles":["chest"]}`, uuid.New())
	w, resp := doJSON(t, r, "POST", "/api/plans/generate", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if resp["success"] != true {
		t.Fatalf("success = %v", resp["success"])
	}
	if resp["message"] != "Workout plan generated successfully" {
		t.Fatalf("message = %v", resp["message"])
	}
	plan, ok := resp["plan"].(map[string]any)
	if !ok {
		t.Fatalf("plan missing: %v", resp)
	}
	if plan["id"] != planID.String() {
		t.Fatalf("plan.id = %v, want %s", plan["id"], planID)
	}
	if plan["workouts"] != float64(3) {
		t.Fatalf("plan.workouts = %v", plan["workouts"])
	}
}

func TestGeneratePlanValidationContract(t *testing.T) {
	stub := &stubPlanService{err: &services.ValidationError{Fields: []services.FieldError{
		{Path: "daysPerWeek", Message: "must be an integer between 1 and 7"},
	}}}
	r := newPlanRouter(stub)

	w, resp := doJSON(t, r, "POST", "/api/plans/generate", `{"userId":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["error"] != "Invalid request data" {
		t.Fatalf("error = %v", resp["error"])
	}
	details, ok := resp["details"].([]any)
	if !ok || len(details) != 1 {
		t.Fatalf("details = %v", resp["details"])
	}
	first := details[0].(map[string]any)
	if first["path"] != "daysPerWeek" {
		t.Fatalf("details[0].path = %v", first["path"])
	}
}

func TestGeneratePlanServiceErrorContract(t *testing.T) {
	stub := &stubPlanService{err: apierr.New(http.StatusGatewayTimeout, "generation_timeout", fmt.Errorf("plan generation timed out"))}
	r := newPlanRouter(stub)

	w, resp := doJSON(t, r, "POST", "/api/plans/generate", `{"userId":"whatever"}`)
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d", w.Code)
	}
	if resp["error"] != "plan generation timed out" {
		t.Fatalf("error = %v", resp["error"])
	}
	if _, has := resp["details"]; has {
		t.Fatal("non-validation errors must not carry details")
	}
}

func TestGeneratePlanRejectsMalformedBody(t *testing.T) {
	stub := &stubPlanService{}
	r := newPlanRouter(stub)

	w, _ := doJSON(t, r, "POST", "/api/plans/generate", `{"daysPerWeek": "three"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.lastReq != nil {
		t.Fatal("service must not be called for malformed bodies")
	}
}
