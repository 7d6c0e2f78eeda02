package api

import (
	"errors"
	"net/http"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/forms"
	"localgym/gym-admin/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MemberHandler serves the catalog home and the member CRUD pages.
type MemberHandler struct {
	members service.MemberService
	catalog service.CatalogService
	logger  *zap.Logger
	devMode bool
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(members service.MemberService, catalog service.CatalogService, logger *zap.Logger, devMode bool) *MemberHandler {
	return &MemberHandler{members: members, catalog: catalog, logger: logger, devMode: devMode}
}

// Index renders the catalog home page with record counts.
func (h *MemberHandler) Index(c *gin.Context) {
	counts, err := h.catalog.Counts(c.Request.Context())
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{
		"Title":  "Local Gym Home",
		"Counts": counts,
	})
}

// List renders all members with their trainers resolved.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.members.List(c.Request.Context())
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "member_list.html", gin.H{
		"Title":   "Member List",
		"Members": members,
	})
}

// Detail renders one member with references resolved plus the plans that
// list the member.
func (h *MemberHandler) Detail(c *gin.Context) {
	id, ok := parseID(c, "Member not found")
	if !ok {
		return
	}
	member, plans, err := h.members.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			renderNotFound(c, "Member not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	photoURL, err := h.members.PhotoURL(c.Request.Context(), member.PhotoKey)
	if err != nil {
		h.logger.Warn("member photo url", zap.Error(err))
		photoURL = ""
	}
	render(c, http.StatusOK, "member_detail.html", gin.H{
		"Title":    member.Name(),
		"Member":   member,
		"Plans":    plans,
		"PhotoURL": photoURL,
	})
}

// CreateForm renders the empty member form with all reference lists.
func (h *MemberHandler) CreateForm(c *gin.Context) {
	data, err := h.members.FormData(c.Request.Context())
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "member_form.html", gin.H{
		"Title":    "Create Member",
		"Trainers": data.Trainers,
		"Plans":    data.Plans,
		"Types":    data.Types,
	})
}

// CreateSubmit validates the submission; failures re-render the form with
// the sanitized candidate, otherwise the member is inserted.
func (h *MemberHandler) CreateSubmit(c *gin.Context) {
	values, failures := memberFormRules().Run(c.PostForm)
	member, refFailures := memberFromForm(values)
	failures = append(failures, refFailures...)

	if len(failures) > 0 {
		h.rerenderForm(c, "Create Member", member, failures)
		return
	}

	if key, ok := h.uploadPhoto(c); ok {
		member.PhotoKey = key
	}

	id, err := h.members.Create(c.Request.Context(), member)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			h.rerenderForm(c, "Create Member", member, []forms.Failure{{Field: "trainer", Message: "Trainer must be specified."}})
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, "/catalog/member/"+id.Hex())
}

// UpdateForm renders the member form bound to an existing record, fetching
// the record and the reference lists concurrently.
func (h *MemberHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c, "Member not found")
	if !ok {
		return
	}

	var (
		member *domain.Member
		data   *service.MemberFormData
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		member, err = h.members.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		data, err = h.members.FormData(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			renderNotFound(c, "Member not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}

	render(c, http.StatusOK, "member_form.html", gin.H{
		"Title":    "Update Member",
		"Member":   member,
		"Trainers": data.Trainers,
		"Plans":    data.Plans,
		"Types":    data.Types,
	})
}

// UpdateSubmit validates like CreateSubmit but the candidate carries the
// original id so the store replaces the right document.
func (h *MemberHandler) UpdateSubmit(c *gin.Context) {
	id, ok := parseID(c, "Member not found")
	if !ok {
		return
	}

	values, failures := memberFormRules().Run(c.PostForm)
	member, refFailures := memberFromForm(values)
	failures = append(failures, refFailures...)
	member.ID = id // required, or a new id would be assigned

	if len(failures) > 0 {
		h.rerenderForm(c, "Update Member", member, failures)
		return
	}

	existing, err := h.members.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			renderNotFound(c, "Member not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	member.PhotoKey = existing.PhotoKey
	if key, uploaded := h.uploadPhoto(c); uploaded {
		member.PhotoKey = key
	}

	if err := h.members.Update(c.Request.Context(), id, member); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			renderNotFound(c, "Member not found")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	c.Redirect(http.StatusFound, member.URL())
}

// DeleteForm renders the confirmation page with the plans that would block
// the deletion.
func (h *MemberHandler) DeleteForm(c *gin.Context) {
	id, ok := parseID(c, "Member not found")
	if !ok {
		return
	}
	member, plans, err := h.members.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.Redirect(http.StatusFound, "/catalog/members")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "member_delete.html", gin.H{
		"Title":  "Delete Member",
		"Member": member,
		"Plans":  plans,
	})
}

// DeleteSubmit re-checks dependents and either refuses (re-rendering the
// confirmation) or deletes and returns to the list.
func (h *MemberHandler) DeleteSubmit(c *gin.Context) {
	id, ok := parseID(c, "Member not found")
	if !ok {
		return
	}
	member, blocking, err := h.members.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.Redirect(http.StatusFound, "/catalog/members")
			return
		}
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	if len(blocking) > 0 {
		render(c, http.StatusOK, "member_delete.html", gin.H{
			"Title":  "Delete Member",
			"Member": member,
			"Plans":  blocking,
		})
		return
	}
	c.Redirect(http.StatusFound, "/catalog/members")
}

// rerenderForm shows the member form again with the sanitized candidate, the
// collected failures, and freshly fetched reference lists.
func (h *MemberHandler) rerenderForm(c *gin.Context, title string, member *domain.Member, failures []forms.Failure) {
	data, err := h.members.FormData(c.Request.Context())
	if err != nil {
		renderServerError(c, h.logger, h.devMode, err)
		return
	}
	render(c, http.StatusOK, "member_form.html", gin.H{
		"Title":    title,
		"Member":   member,
		"Trainers": data.Trainers,
		"Plans":    data.Plans,
		"Types":    data.Types,
		"Errors":   failures,
	})
}

// uploadPhoto stores an optional "photo" file from the multipart form and
// returns its object key. ok is false when no file was sent.
func (h *MemberHandler) uploadPhoto(c *gin.Context) (string, bool) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		return "", false
	}
	defer file.Close()

	key, err := h.members.UploadPhoto(c.Request.Context(), header.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Warn("member photo upload", zap.Error(err))
		return "", false
	}
	return key, true
}

// memberFromForm reconstructs the candidate member from sanitized form
// values. Reference fields that fail to parse are reported as failures.
func memberFromForm(values forms.Values) (*domain.Member, []forms.Failure) {
	member := &domain.Member{
		FirstName:   values.String("first_name"),
		FamilyName:  values.String("family_name"),
		DateOfBirth: values.Date("date_of_birth"),
		Address:     values.String("m_address"),
		PhoneNumber: values.String("m_number"),
		DateOfReg:   values.Date("date_of_reg"),
		PlanEndOn:   values.Date("plan_end_on"),
	}

	var failures []forms.Failure
	if raw := values.String("trainer"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			failures = append(failures, forms.Failure{Field: "trainer", Message: "Trainer must be specified."})
		} else {
			member.TrainerID = id
		}
	}
	if raw := values.String("plan"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			failures = append(failures, forms.Failure{Field: "plan", Message: "Invalid plan selected."})
		} else {
			member.PlanID = &id
		}
	}
	if raw := values.String("type"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			failures = append(failures, forms.Failure{Field: "type", Message: "Invalid type selected."})
		} else {
			member.TypeID = &id
		}
	}
	return member, failures
}
