package handlers

import (
	"io"
	"net/http"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/editor"
	"github.com/gaurav-prasanna/blockpipe/core/extract"
	"github.com/gaurav-prasanna/blockpipe/server/response"
	"github.com/gin-gonic/gin"
)

// maxBodyBytes caps request bodies on every endpoint that reads one.
const maxBodyBytes = 8 << 20

// ConvertHandler exposes the stateless conversions.
type ConvertHandler struct {
	conv       *convert.Converter
	normalizer core.Normalizer
}

func NewConvertHandler(conv *convert.Converter, normalizer core.Normalizer) *ConvertHandler {
	return &ConvertHandler{conv: conv, normalizer: normalizer}
}

// Normalize upgrades the legacy blocks of a posted block array.
func (h *ConvertHandler) Normalize(c *gin.Context) {
	doc, ok := readBlocks(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.normalizer.Normalize(doc))
}

// Editor converts a posted block array to an editor document.
func (h *ConvertHandler) Editor(c *gin.Context) {
	doc, ok := readBlocks(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.conv.ToEditorTree(doc))
}

// Blocks converts a posted editor document to a block array. An HTML body
// (editor markup or a whole page) is parsed instead of the JSON tree.
func (h *ConvertHandler) Blocks(c *gin.Context) {
	if c.ContentType() == "text/html" {
		h.blocksFromHTML(c)
		return
	}
	doc, ok := readEditor(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.conv.ToBlocks(doc))
}

func (h *ConvertHandler) blocksFromHTML(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidBody, err)
		return
	}
	res, err := extract.New().Extract(string(raw))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidBody, err)
		return
	}
	doc, err := h.conv.FromEditorHTML(res.HTML)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidBody, err)
		return
	}
	response.RespondOK(c, doc)
}

func readBlocks(c *gin.Context) (block.Document, bool) {
	doc, err := block.Decode(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidBody, err)
		return nil, false
	}
	return doc, true
}

func readEditor(c *gin.Context) (editor.Doc, bool) {
	doc, err := editor.Decode(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidBody, err)
		return editor.Doc{}, false
	}
	return doc, true
}
