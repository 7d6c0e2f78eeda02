package api

import (
	"errors"
	"net/http"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/forms"
	"localgym/gym-admin/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanHandler serves the membership plan CRUD pages.
type PlanHandler struct {
	plans   service.PlanService
	logger  *zap.Logger
	devMode bool
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(plans service.PlanService, logger *zap.Logger, devMode bool) *PlanHandler {
	return &PlanHandler{plans: plans, logger: logger, devMode: devMode}
}

// List renders all plans.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "plan_list.html", gin.H{
		"Title": "Plan List",
		"Plans": plans,
	})
}

// Detail renders one plan plus the members on it. The description is shown
// as rendered markdown.
func (h *PlanHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "Plan not found")
	if !ok {
		return
	}
	plan, members, err := h.plans.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			renderNotFound(c, "Plan not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "plan_detail.html", gin.H{
		"Title":   plan.PlanName,
		"Plan":    plan,
		"Members": members,
	})
}

// CreateForm renders the empty plan form.
func (h *PlanHandler) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "plan_form.html", gin.H{
		"Title": "Create Plan",
	})
}

// CreateSubmit validates the submission and inserts the plan.
func (h *PlanHandler) CreateSubmit(c *gin.Context) {
	values, failures := planFormRules().Run(c.PostForm)
	plan := planFromForm(values)

	if len(failures) > 0 {
		render(c, http.StatusOK, "plan_form.html", gin.H{
			"Title":  "Create Plan",
			"Plan":   plan,
			"Errors": failures,
		})
		return
	}

	id, err := h.plans.Create(c.Request.Context(), plan)
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, "/catalog/plan/"+id.Hex())
}

// UpdateForm renders the plan form bound to an existing record.
func (h *PlanHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c, "Plan not found")
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			renderNotFound(c, "Plan not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "plan_form.html", gin.H{
		"Title": "Update Plan",
		"Plan":  plan,
	})
}

// UpdateSubmit validates like CreateSubmit but keeps the original id. The
// member assignment list survives the replace untouched.
func (h *PlanHandler) UpdateSubmit(c *gin.Context) {
	id, ok := parseID(c, "Plan not found")
	if !ok {
		return
	}

	values, failures := planFormRules().Run(c.PostForm)
	plan := planFromForm(values)
	plan.ID = id

	if len(failures) > 0 {
		render(c, http.StatusOK, "plan_form.html", gin.H{
			"Title":  "Update Plan",
			"Plan":   plan,
			"Errors": failures,
		})
		return
	}

	existing, err := h.plans.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			renderNotFound(c, "Plan not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	plan.MemberIDs = existing.MemberIDs

	if err := h.plans.Update(c.Request.Context(), id, plan); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			renderNotFound(c, "Plan not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, plan.URL())
}

// DeleteForm renders the confirmation page with the members that would
// block the deletion.
func (h *PlanHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c, "Plan not found")
	if !ok {
		return
	}
	plan, members, err := h.plans.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.Redirect(http.StatusFound, "/catalog/plans")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "plan_delete.html", gin.H{
		"Title":   "Delete Plan",
		"Plan":    plan,
		"Members": members,
	})
}

// DeleteSubmit re-checks dependents and either refuses or deletes.
func (h *PlanHandler) DeleteSubmit(c *gin.Context) {
	id, ok := parseID(c, "Plan not found")
	if !ok {
		return
	}
	plan, blocking, err := h.plans.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.Redirect(http.StatusFound, "/catalog/plans")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	if len(blocking) > 0 {
		render(c, http.StatusOK, "plan_delete.html", gin.H{
			"Title":   "Delete Plan",
			"Plan":    plan,
			"Members": blocking,
		})
		return
	}
	c.Redirect(http.StatusFound, "/catalog/plans")
}

// planFromForm reconstructs the candidate plan from sanitized values.
func planFromForm(values forms.Values) *domain.Plan {
	return &domain.Plan{
		PlanName:    values.String("planName"),
		Price:       values.Int("price"),
		Description: values.String("discription"),
		Status:      domain.PlanStatus(values.String("status")),
	}
}
