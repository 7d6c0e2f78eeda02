package api

import (
	"errors"
	"net/http"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TypeHandler serves the membership type CRUD pages.
type TypeHandler struct {
	types   service.TypeService
	logger  *zap.Logger
	devMode bool
}

// NewTypeHandler creates a new membership type handler.
func NewTypeHandler(types service.TypeService, logger *zap.Logger, devMode bool) *TypeHandler {
	return &TypeHandler{types: types, logger: logger, devMode: devMode}
}

// List renders all types sorted by name.
func (h *TypeHandler) List(c *gin.Context) {
	types, err := h.types.List(c.Request.Context())
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "type_list.html", gin.H{
		"Title": "Type List",
		"Types": types,
	})
}

// Detail renders one type plus the members carrying it.
func (h *TypeHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "Type not found")
	if !ok {
		return
	}
	t, members, err := h.types.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTypeNotFound) {
			renderNotFound(c, "Type not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "type_detail.html", gin.H{
		"Title":   "Type Detail",
		"Type":    t,
		"Members": members,
	})
}

// CreateForm renders the empty type form.
func (h *TypeHandler) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "type_form.html", gin.H{
		"Title": "Create Type",
	})
}

// CreateSubmit validates the name and inserts the type — unless one with the
// same name exists, in which case the response redirects to the existing
// record instead of inserting a duplicate.
func (h *TypeHandler) CreateSubmit(c *gin.Context) {
	values, failures := typeFormRules().Run(c.PostForm)
	t := &domain.MembershipType{Name: values.String("name")}

	if len(failures) > 0 {
		render(c, http.StatusOK, "type_form.html", gin.H{
			"Title":  "Create Type",
			"Type":   t,
			"Errors": failures,
		})
		return
	}

	result, _, err := h.types.CreateOrExisting(c.Request.Context(), t)
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, result.URL())
}

// UpdateForm renders the type form bound to an existing record.
func (h *TypeHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c, "Type not found")
	if !ok {
		return
	}
	t, err := h.types.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTypeNotFound) {
			renderNotFound(c, "Type not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "type_form.html", gin.H{
		"Title": "Update Type",
		"Type":  t,
	})
}

// UpdateSubmit validates like CreateSubmit but keeps the original id.
func (h *TypeHandler) UpdateSubmit(c *gin.Context) {
	id, ok := parseID(c, "Type not found")
	if !ok {
		return
	}

	values, failures := typeFormRules().Run(c.PostForm)
	t := &domain.MembershipType{ID: id, Name: values.String("name")}

	if len(failures) > 0 {
		render(c, http.StatusOK, "type_form.html", gin.H{
			"Title":  "Update Type",
			"Type":   t,
			"Errors": failures,
		})
		return
	}

	if err := h.types.Update(c.Request.Context(), id, t); err != nil {
		if errors.Is(err, service.ErrTypeNotFound) {
			renderNotFound(c, "Type not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, t.URL())
}

// DeleteForm renders the confirmation page with the members that would
// block the deletion.
func (h *TypeHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c, "Type not found")
	if !ok {
		return
	}
	t, members, err := h.types.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTypeNotFound) {
			c.Redirect(http.StatusFound, "/catalog/types")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "type_delete.html", gin.H{
		"Title":   "Delete Type",
		"Type":    t,
		"Members": members,
	})
}

// DeleteSubmit re-checks dependents and either refuses or deletes.
func (h *TypeHandler) DeleteSubmit(c *gin.Context) {
	id, ok := parseID(c, "Type not found")
	if !ok {
		return
	}
	t, blocking, err := h.types.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTypeNotFound) {
			c.Redirect(http.StatusFound, "/catalog/types")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	if len(blocking) > 0 {
		render(c, http.StatusOK, "type_delete.html", gin.H{
			"Title":   "Delete Type",
			"Type":    t,
			"Members": blocking,
		})
		return
	}
	c.Redirect(http.StatusFound, "/catalog/types")
}
