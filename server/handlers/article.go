package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/fetch"
	"github.com/gaurav-prasanna/blockpipe/core/render"
	"github.com/gaurav-prasanna/blockpipe/internal/logger"
	"github.com/gaurav-prasanna/blockpipe/server/response"
	"github.com/gin-gonic/gin"
)

// ArticleHandler serves stored articles in every format and accepts
// edits from the editor.
type ArticleHandler struct {
	store      core.ContentStore
	conv       *convert.Converter
	normalizer core.Normalizer
	html       *render.HTMLRenderer
	log        *logger.Logger
}

// NewArticleHandler creates an ArticleHandler. The HTML renderer serves
// the /html route; a nil logger discards output.
func NewArticleHandler(
	store core.ContentStore,
	conv *convert.Converter,
	normalizer core.Normalizer,
	html *render.HTMLRenderer,
	log *logger.Logger,
) *ArticleHandler {
	return &ArticleHandler{
		store:      store,
		conv:       conv,
		normalizer: normalizer,
		html:       html,
		log:        logger.OrNop(log),
	}
}

// Get returns the normalized block body.
func (h *ArticleHandler) Get(c *gin.Context) {
	a, ok := h.load(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.normalizer.Normalize(a.Body))
}

// GetEditor returns the body as an editor document.
func (h *ArticleHandler) GetEditor(c *gin.Context) {
	a, ok := h.load(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.conv.ToEditorTree(a.Body))
}

// GetHTML returns the rendered article page fragment.
func (h *ArticleHandler) GetHTML(c *gin.Context) {
	a, ok := h.load(c)
	if !ok {
		return
	}
	normalized := *a
	normalized.Body = h.normalizer.Normalize(a.Body)
	data, err := h.html.Render(&normalized)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, response.CodeRender, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// Put replaces the body with a posted editor document. An If-Match header
// must carry the current revision when present. Stores implementing
// core.ConditionalStore check it again while writing, so a concurrent
// edit between the read and the write also fails with 412; for other
// stores the check is best-effort.
func (h *ArticleHandler) Put(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidParam, errors.New("missing content id"))
		return
	}
	doc, ok := readEditor(c)
	if !ok {
		return
	}

	a, err := h.store.Fetch(c.Request.Context(), id)
	switch {
	case errors.Is(err, core.ErrNotFound):
		a = &core.Article{ID: id}
	case err != nil:
		h.storeError(c, err)
		return
	}

	expected := ""
	if match := c.GetHeader("If-Match"); match != "" && match != "*" {
		expected = unquote(match)
		if expected != a.Revision {
			response.RespondError(c, http.StatusPreconditionFailed, response.CodeConflict,
				fmt.Errorf("article %s is at revision %q", id, a.Revision))
			return
		}
	}

	if title := strings.TrimSpace(c.Query("title")); title != "" {
		a.Title = title
	}
	a.Body = h.conv.ToBlocks(doc)
	if err := h.save(c, a, expected); err != nil {
		h.storeError(c, err)
		return
	}
	h.log.Info("article saved", "id", id, "blocks", len(a.Body), "revision", a.Revision)

	setETag(c, a.Revision)
	response.RespondOK(c, gin.H{
		"id":       a.ID,
		"revision": a.Revision,
		"blocks":   len(a.Body),
	})
}

func (h *ArticleHandler) save(c *gin.Context, a *core.Article, expected string) error {
	if cs, ok := h.store.(core.ConditionalStore); ok && expected != "" {
		return cs.SaveIfRevision(c.Request.Context(), a, expected)
	}
	return h.store.Save(c.Request.Context(), a)
}

// load fetches the article named by :id and handles the conditional GET.
// It returns false once a response has been written.
func (h *ArticleHandler) load(c *gin.Context) (*core.Article, bool) {
	id := strings.TrimSpace(c.Param("id"))
	a, err := h.store.Fetch(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return nil, false
	}
	setETag(c, a.Revision)
	if match := c.GetHeader("If-None-Match"); match != "" && a.Revision != "" && unquote(match) == a.Revision {
		c.Status(http.StatusNotModified)
		return nil, false
	}
	return a, true
}

func (h *ArticleHandler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, response.CodeNotFound, err)
	case errors.Is(err, core.ErrRevisionMismatch):
		response.RespondError(c, http.StatusPreconditionFailed, response.CodeConflict, err)
	case errors.Is(err, fetch.ErrReadOnly):
		response.RespondError(c, http.StatusForbidden, response.CodeReadOnly, err)
	default:
		h.log.Error("content store failed", "id", c.Param("id"), "error", err)
		response.RespondError(c, http.StatusBadGateway, response.CodeStore, err)
	}
}

func setETag(c *gin.Context, revision string) {
	if revision != "" {
		c.Header("ETag", `"`+revision+`"`)
	}
}

func unquote(tag string) string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "W/")
	return strings.Trim(tag, `"`)
}
