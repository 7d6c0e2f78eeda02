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

// TrainerHandler serves the trainer CRUD pages.
type TrainerHandler struct {
	trainers service.TrainerService
	logger   *zap.Logger
	devMode  bool
}

// NewTrainerHandler creates a new trainer handler.
func NewTrainerHandler(trainers service.TrainerService, logger *zap.Logger, devMode bool) *TrainerHandler {
	return &TrainerHandler{trainers: trainers, logger: logger, devMode: devMode}
}

// List renders all trainers sorted by family name.
func (h *TrainerHandler) List(c *gin.Context) {
	trainers, err := h.trainers.List(c.Request.Context())
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "trainer_list.html", gin.H{
		"Title":    "Trainer List",
		"Trainers": trainers,
	})
}

// Detail renders one trainer plus the members they train.
func (h *TrainerHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "Trainer not found")
	if !ok {
		return
	}
	trainer, members, err := h.trainers.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			renderNotFound(c, "Trainer not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "trainer_detail.html", gin.H{
		"Title":   trainer.Name(),
		"Trainer": trainer,
		"Members": members,
	})
}

// CreateForm renders the empty trainer form.
func (h *TrainerHandler) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "trainer_form.html", gin.H{
		"Title": "Create Trainer",
	})
}

// CreateSubmit validates the submission and inserts the trainer.
func (h *TrainerHandler) CreateSubmit(c *gin.Context) {
	values, failures := trainerFormRules().Run(c.PostForm)
	trainer := trainerFromForm(values)

	if len(failures) > 0 {
		render(c, http.StatusOK, "trainer_form.html", gin.H{
			"Title":   "Create Trainer",
			"Trainer": trainer,
			"Errors":  failures,
		})
		return
	}

	id, err := h.trainers.Create(c.Request.Context(), trainer)
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, "/catalog/trainer/"+id.Hex())
}

// UpdateForm renders the trainer form bound to an existing record.
func (h *TrainerHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c, "Trainer not found")
	if !ok {
		return
	}
	trainer, err := h.trainers.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			renderNotFound(c, "Trainer not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "trainer_form.html", gin.H{
		"Title":   "Update Trainer",
		"Trainer": trainer,
	})
}

// UpdateSubmit validates like CreateSubmit but keeps the original id.
func (h *TrainerHandler) UpdateSubmit(c *gin.Context) {
	id, ok := parseID(c, "Trainer not found")
	if !ok {
		return
	}

	values, failures := trainerFormRules().Run(c.PostForm)
	trainer := trainerFromForm(values)
	trainer.ID = id

	if len(failures) > 0 {
		render(c, http.StatusOK, "trainer_form.html", gin.H{
			"Title":   "Update Trainer",
			"Trainer": trainer,
			"Errors":  failures,
		})
		return
	}

	if err := h.trainers.Update(c.Request.Context(), id, trainer); err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			renderNotFound(c, "Trainer not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, trainer.URL())
}

// DeleteForm renders the confirmation page with the members that would
// block the deletion.
func (h *TrainerHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c, "Trainer not found")
	if !ok {
		return
	}
	trainer, members, err := h.trainers.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			c.Redirect(http.StatusFound, "/catalog/trainers")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "trainer_delete.html", gin.H{
		"Title":   "Delete Trainer",
		"Trainer": trainer,
		"Members": members,
	})
}

// DeleteSubmit re-checks dependents and either refuses or deletes.
func (h *TrainerHandler) DeleteSubmit(c *gin.Context) {
	id, ok := parseID(c, "Trainer not found")
	if !ok {
		return
	}
	trainer, blocking, err := h.trainers.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			c.Redirect(http.StatusFound, "/catalog/trainers")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	if len(blocking) > 0 {
		render(c, http.StatusOK, "trainer_delete.html", gin.H{
			"Title":   "Delete Trainer",
			"Trainer": trainer,
			"Members": blocking,
		})
		return
	}
	c.Redirect(http.StatusFound, "/catalog/trainers")
}

// trainerFromForm reconstructs the candidate trainer from sanitized values.
func trainerFromForm(values forms.Values) *domain.Trainer {
	return &domain.Trainer{
		FirstName:   values.String("first_name"),
		FamilyName:  values.String("family_name"),
		DateOfBirth: values.Date("date_of_birth"),
		Address:     values.String("m_address"),
		PhoneNumber: values.String("m_number"),
		DateOfReg:   values.Date("date_of_reg"),
		Salary:      values.Int("salary"),
	}
}
