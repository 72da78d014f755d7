package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"creatorverse.backend/internal/domain/entities"
	domainerrors "creatorverse.backend/internal/domain/errors"
	"creatorverse.backend/internal/pages"
	"creatorverse.backend/pkg/logger"
	"creatorverse.backend/pkg/utils"
)

const (
	navHome = "home"
	navAdd  = "add"

	avatarCardSize   = 64
	avatarDetailSize = 128

	titleLoadFailed = "Something went wrong"
	titleEditFailed = "Unable to edit"
)

type pageData struct {
	Title          string
	Nav            string
	LoadError      string
	LoadErrorTitle string
}

type avatarData struct {
	Image entities.Image
	Size  int
}

type cardData struct {
	ID          string
	Name        string
	URL         string
	Description string
	Avatar      avatarData
}

type listData struct {
	pageData
	Count int
	Empty bool
	Cards []cardData
}

type detailData struct {
	pageData
	ID           string
	Name         string
	URL          string
	Description  string
	Avatar       avatarData
	ActionError  string
	Deleting     bool
	DeleteAction string
	DeleteToken  string
}

type formData struct {
	pageData
	Heading      string
	Action       string
	SubmitLabel  string
	CancelURL    string
	Values       entities.CreatorFields
	Errors       map[string]string
	ActionError  string
	Token        string
	Saving       bool
	Name         string
	Deleting     bool
	DeleteAction string
	DeleteToken  string
}

// PageHandler renders the creator pages. Every request mounts a fresh page
// controller bound to the request context.
type PageHandler struct {
	store    pages.CreatorStore
	newToken func() string
}

func NewPageHandler(store pages.CreatorStore) *PageHandler {
	return &PageHandler{store: store, newToken: utils.NewFormToken}
}

// ListCreators renders the list page.
// GET /
func (h *PageHandler) ListCreators(c *gin.Context) {
	p := pages.NewListPage(h.store)
	defer p.Unmount()

	data := listData{pageData: pageData{Title: "Creators", Nav: navHome}}
	if err := p.Mount(c.Request.Context()); err != nil {
		if h.gone(c, err) {
			return
		}
		logger.Warn(c.Request.Context(), "list creators failed", zap.Error(err))
		data.LoadError = p.LoadError()
		data.LoadErrorTitle = titleLoadFailed
		c.HTML(statusOf(err), "list.html", data)
		return
	}

	creators := p.Creators()
	data.Count = len(creators)
	data.Empty = p.Empty()
	data.Cards = make([]cardData, 0, len(creators))
	for _, creator := range creators {
		data.Cards = append(data.Cards, cardData{
			ID:          creator.ID.String(),
			Name:        creator.Name,
			URL:         creator.URL,
			Description: creator.Description,
			Avatar:      avatarData{Image: creator.Image(), Size: avatarCardSize},
		})
	}
	c.HTML(http.StatusOK, "list.html", data)
}

// ViewCreator renders one creator.
// GET /creators/:id
func (h *PageHandler) ViewCreator(c *gin.Context) {
	p := pages.NewViewPage(h.store, c.Param("id"))
	defer p.Unmount()

	if err := p.Mount(c.Request.Context()); err != nil {
		h.renderViewLoadError(c, p, err)
		return
	}
	c.HTML(http.StatusOK, "view.html", h.detail(p))
}

// DeleteFromView deletes the creator shown on the detail page.
// POST /creators/:id/delete
func (h *PageHandler) DeleteFromView(c *gin.Context) {
	p := pages.NewViewPage(h.store, c.Param("id"))
	defer p.Unmount()

	if err := p.Mount(c.Request.Context()); err != nil {
		h.renderViewLoadError(c, p, err)
		return
	}

	next, err := p.Delete()
	if err != nil {
		if h.gone(c, err) {
			return
		}
		logger.Warn(c.Request.Context(), "delete creator failed", zap.String("id", p.ID()), zap.Error(err))
		c.HTML(statusOf(err), "view.html", h.detail(p))
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

// NewCreatorForm renders the empty add form.
// GET /creators/new
func (h *PageHandler) NewCreatorForm(c *gin.Context) {
	p := pages.NewAddPage(h.store)
	defer p.Unmount()
	p.Mount(c.Request.Context())

	c.HTML(http.StatusOK, "form.html", h.addForm(p, nil))
}

// CreateCreator saves a new creator.
// POST /creators/new
func (h *PageHandler) CreateCreator(c *gin.Context) {
	p := pages.NewAddPage(h.store)
	defer p.Unmount()
	p.Mount(c.Request.Context())

	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "form.html", h.addForm(p, map[string]string{"": err.Error()}))
		return
	}
	p.Form().Bind(c.Request.PostForm)

	if errs := fieldErrors(p.Form().Values().Validate()); errs != nil {
		c.HTML(http.StatusUnprocessableEntity, "form.html", h.addForm(p, errs))
		return
	}

	next, err := p.Submit()
	if err != nil {
		if h.gone(c, err) {
			return
		}
		logger.Warn(c.Request.Context(), "add creator failed", zap.Error(err))
		c.HTML(statusOf(err), "form.html", h.addForm(p, nil))
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

// EditCreatorForm renders the edit form seeded from the stored creator.
// GET /creators/:id/edit
func (h *PageHandler) EditCreatorForm(c *gin.Context) {
	p := pages.NewEditPage(h.store, c.Param("id"))
	defer p.Unmount()

	if err := p.Mount(c.Request.Context()); err != nil {
		h.renderEditLoadError(c, p, err)
		return
	}
	c.HTML(http.StatusOK, "form.html", h.editForm(p, nil))
}

// UpdateCreator saves the edit form.
// POST /creators/:id/edit
func (h *PageHandler) UpdateCreator(c *gin.Context) {
	p := pages.NewEditPage(h.store, c.Param("id"))
	defer p.Unmount()

	if err := p.Mount(c.Request.Context()); err != nil {
		h.renderEditLoadError(c, p, err)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "form.html", h.editForm(p, map[string]string{"": err.Error()}))
		return
	}
	p.Form().Bind(c.Request.PostForm)

	if errs := fieldErrors(p.Form().Values().Validate()); errs != nil {
		c.HTML(http.StatusUnprocessableEntity, "form.html", h.editForm(p, errs))
		return
	}

	next, err := p.Submit()
	if err != nil {
		if h.gone(c, err) {
			return
		}
		logger.Warn(c.Request.Context(), "update creator failed", zap.String("id", p.ID()), zap.Error(err))
		c.HTML(statusOf(err), "form.html", h.editForm(p, nil))
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

// DeleteFromEdit deletes the creator from the edit page.
// POST /creators/:id/edit/delete
func (h *PageHandler) DeleteFromEdit(c *gin.Context) {
	p := pages.NewEditPage(h.store, c.Param("id"))
	defer p.Unmount()

	if err := p.Mount(c.Request.Context()); err != nil {
		h.renderEditLoadError(c, p, err)
		return
	}

	next, err := p.Delete()
	if err != nil {
		if h.gone(c, err) {
			return
		}
		logger.Warn(c.Request.Context(), "delete creator failed", zap.String("id", p.ID()), zap.Error(err))
		c.HTML(statusOf(err), "form.html", h.editForm(p, nil))
		return
	}
	c.Redirect(http.StatusSeeOther, next)
}

// NotFound renders the static not-found page for unknown routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", pageData{Title: "Not Found"})
}

func (h *PageHandler) renderViewLoadError(c *gin.Context, p *pages.ViewPage, err error) {
	if h.gone(c, err) {
		return
	}
	if !domainerrors.IsNotFound(err) {
		logger.Warn(c.Request.Context(), "load creator failed", zap.String("id", p.ID()), zap.Error(err))
	}
	c.HTML(statusOf(err), "view.html", detailData{pageData: pageData{
		Title:          titleLoadFailed,
		LoadError:      p.LoadError(),
		LoadErrorTitle: titleLoadFailed,
	}})
}

func (h *PageHandler) renderEditLoadError(c *gin.Context, p *pages.EditPage, err error) {
	if h.gone(c, err) {
		return
	}
	message := p.LoadError()
	if domainerrors.IsNotFound(err) {
		message = "Creator not found"
	} else {
		logger.Warn(c.Request.Context(), "load creator for edit failed", zap.String("id", p.ID()), zap.Error(err))
	}
	c.HTML(statusOf(err), "form.html", formData{pageData: pageData{
		Title:          titleEditFailed,
		LoadError:      message,
		LoadErrorTitle: titleEditFailed,
	}})
}

func (h *PageHandler) detail(p *pages.ViewPage) detailData {
	creator := p.Creator()
	return detailData{
		pageData:     pageData{Title: creator.Name},
		ID:           p.ID(),
		Name:         creator.Name,
		URL:          creator.URL,
		Description:  creator.Description,
		Avatar:       avatarData{Image: creator.Image(), Size: avatarDetailSize},
		ActionError:  p.ActionError(),
		Deleting:     p.Deleting(),
		DeleteAction: pages.CreatorPath(p.ID()) + "/delete",
		DeleteToken:  h.newToken(),
	}
}

func (h *PageHandler) addForm(p *pages.AddPage, errs map[string]string) formData {
	return formData{
		pageData:    pageData{Title: "Add Creator", Nav: navAdd},
		Heading:     "Add a creator",
		Action:      "/creators/new",
		SubmitLabel: "Save creator",
		CancelURL:   pages.HomePath,
		Values:      p.Form().Values(),
		Errors:      errs,
		ActionError: p.ActionError(),
		Token:       h.newToken(),
		Saving:      p.Saving(),
	}
}

func (h *PageHandler) editForm(p *pages.EditPage, errs map[string]string) formData {
	name := ""
	if creator := p.Creator(); creator != nil {
		name = creator.Name
	}
	return formData{
		pageData:     pageData{Title: "Edit " + name},
		Heading:      "Edit " + name,
		Action:       pages.CreatorPath(p.ID()) + "/edit",
		SubmitLabel:  "Save changes",
		CancelURL:    pages.CreatorPath(p.ID()),
		Values:       p.Form().Values(),
		Errors:       errs,
		ActionError:  p.ActionError(),
		Token:        h.newToken(),
		Saving:       p.Saving(),
		Name:         name,
		Deleting:     p.Deleting(),
		DeleteAction: pages.CreatorPath(p.ID()) + "/edit/delete",
		DeleteToken:  h.newToken(),
	}
}

// gone reports a request whose client left while the page was working.
func (h *PageHandler) gone(c *gin.Context, err error) bool {
	if !errors.Is(err, pages.ErrUnmounted) && c.Request.Context().Err() == nil {
		return false
	}
	logger.Debug(c.Request.Context(), "client went away", zap.String("path", c.Request.URL.Path))
	c.Abort()
	return true
}

func statusOf(err error) int {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// fieldErrors flattens a validation result into per-field messages, nil when valid.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		out[field] = fieldErr.Error()
	}
	return out
}
