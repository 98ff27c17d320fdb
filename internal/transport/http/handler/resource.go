package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recordhub/internal/presenter"
	"recordhub/internal/transport/http/middleware"
	"recordhub/internal/transport/http/response"
	"recordhub/internal/validation"
)

// ResourceService is what a resource page and its JSON API need from the
// application layer.
type ResourceService[R any] interface {
	presenter.Backend[R]
	Get(ctx context.Context, id uint) (*R, error)
}

// ResourceHandler serves one record kind as JSON or as a server-rendered
// page, depending on the caller.
type ResourceHandler[R any] struct {
	service func(c *gin.Context) ResourceService[R]
	options func(c *gin.Context) presenter.Options[R]
	timeout time.Duration
	log     *zap.Logger
}

func (h *ResourceHandler[R]) List(c *gin.Context) {
	if middleware.WantsHTML(c) {
		page := h.page(c)
		if err := page.Load(c.Request.Context()); err != nil {
			h.log.Warn("load page failed", zap.Error(err))
		}
		h.openFromQuery(c, page)
		h.render(c, http.StatusOK, page)
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()
	records, err := h.service(c).List(ctx)
	if err != nil {
		writeError(c, h.log, err, "list records failed")
		return
	}
	response.OK(c, records)
}

func (h *ResourceHandler[R]) Show(c *gin.Context) {
	id, ok := parseID(c)
	if middleware.WantsHTML(c) {
		page := h.page(c)
		if err := page.Load(c.Request.Context()); err != nil {
			h.log.Warn("load page failed", zap.Error(err))
		}
		status := http.StatusOK
		if !ok || page.OpenDetails(id) != nil {
			status = http.StatusNotFound
		}
		h.render(c, status, page)
		return
	}

	if !ok {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "record not found")
		return
	}
	ctx, cancel := h.withTimeout(c)
	defer cancel()
	record, err := h.service(c).Get(ctx, id)
	if err != nil {
		writeError(c, h.log, err, "get record failed")
		return
	}
	response.OK(c, record)
}

func (h *ResourceHandler[R]) Create(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		writeError(c, h.log, err, "create record failed")
		return
	}
	if middleware.WantsHTML(c) {
		page := h.page(c)
		if err := page.Load(c.Request.Context()); err != nil {
			h.log.Warn("load page failed", zap.Error(err))
		}
		if err := page.OpenAdd(); err != nil {
			writeError(c, h.log, err, "open form failed")
			return
		}
		h.submit(c, page, fields)
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()
	record, err := h.service(c).Create(ctx, fields)
	if err != nil {
		writeError(c, h.log, err, "create record failed")
		return
	}
	response.Created(c, record)
}

func (h *ResourceHandler[R]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "record not found")
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		writeError(c, h.log, err, "update record failed")
		return
	}
	if middleware.WantsHTML(c) {
		page := h.page(c)
		if err := page.Load(c.Request.Context()); err != nil {
			h.log.Warn("load page failed", zap.Error(err))
		}
		if err := page.OpenEdit(id); err != nil {
			h.render(c, statusForOpen(err), page)
			return
		}
		h.submit(c, page, fields)
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()
	record, err := h.service(c).Update(ctx, id, fields)
	if err != nil {
		writeError(c, h.log, err, "update record failed")
		return
	}
	response.OK(c, record)
}

func (h *ResourceHandler[R]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "record not found")
		return
	}
	if middleware.WantsHTML(c) {
		page := h.page(c)
		if err := page.Load(c.Request.Context()); err != nil {
			h.log.Warn("load page failed", zap.Error(err))
		}
		if err := page.OpenDelete(id); err != nil {
			h.render(c, statusForOpen(err), page)
			return
		}
		result, err := page.ConfirmDelete(c.Request.Context())
		h.settle(c, page, result, err)
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()
	if err := h.service(c).Delete(ctx, id); err != nil {
		writeError(c, h.log, err, "delete record failed")
		return
	}
	response.OK(c, gin.H{"id": id})
}

func (h *ResourceHandler[R]) page(c *gin.Context) *presenter.Page[R] {
	opts := h.options(c)
	opts.Timeout = h.timeout
	return presenter.NewPage[R](h.service(c), opts)
}

func (h *ResourceHandler[R]) submit(c *gin.Context, page *presenter.Page[R], fields validation.Fields) {
	for name, value := range fields {
		s, _ := value.(string)
		if err := page.SetField(name, s); err != nil && !errors.Is(err, presenter.ErrUnknownField) {
			writeError(c, h.log, err, "fill form failed")
			return
		}
	}
	result, err := page.Submit(c.Request.Context())
	h.settle(c, page, result, err)
}

// settle finishes a page write: redirect on success, otherwise re-render
// the page in whatever state the presenter left it.
func (h *ResourceHandler[R]) settle(c *gin.Context, page *presenter.Page[R], result presenter.Result, err error) {
	if err != nil {
		writeError(c, h.log, err, "page transition failed")
		return
	}
	switch result {
	case presenter.Saved:
		c.Redirect(http.StatusSeeOther, "/"+h.options(c).Kind)
	case presenter.Rejected:
		h.render(c, http.StatusUnprocessableEntity, page)
	default:
		status, _, _ := classify(page.Err())
		if status == http.StatusInternalServerError {
			h.log.Error("page write failed", zap.Error(page.Err()))
		}
		h.render(c, status, page)
	}
}

// openFromQuery opens the dialog named by ?modal= so links can deep-link
// into the add, edit, details and delete views.
func (h *ResourceHandler[R]) openFromQuery(c *gin.Context, page *presenter.Page[R]) {
	modal := c.Query("modal")
	if modal == "" {
		return
	}
	id, _ := parseUintID(c.Query("id"))
	switch modal {
	case "add":
		_ = page.OpenAdd()
	case "edit":
		_ = page.OpenEdit(id)
	case "details":
		_ = page.OpenDetails(id)
	case "delete":
		_ = page.OpenDelete(id)
	}
}

func (h *ResourceHandler[R]) render(c *gin.Context, status int, page *presenter.Page[R]) {
	c.HTML(status, "resource.tmpl", page.View())
}

func (h *ResourceHandler[R]) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func statusForOpen(err error) int {
	if errors.Is(err, presenter.ErrUnknownRecord) {
		return http.StatusNotFound
	}
	status, _, _ := classify(err)
	return status
}
