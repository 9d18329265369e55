package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shelkesanchit/Suvidha-sub000/internal/service"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// DocumentHandler serves stored documents and receipts via signed tokens.
type DocumentHandler struct {
	documents *service.DocumentService
	logger    *zap.Logger
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(documents *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentHandler{documents: documents, logger: logger}
}

// Download godoc
// @Summary Download a document or receipt by signed token
// @Tags Documents
// @Produce application/octet-stream
// @Param dept path string true "Department"
// @Param token path string true "Signed download token"
// @Success 200 {string} string "File content"
// @Router /{dept}/documents/{token} [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, file, err := h.documents.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	contentType := "application/pdf"
	filename := file.Name()
	if doc != nil {
		contentType = doc.MimeType
		filename = doc.FileName
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		h.logger.Warn("failed to stream stored file", zap.Error(err))
	}
}

// SignedURL godoc
// @Summary Issue a fresh signed download token for a document
// @Tags Documents
// @Produce json
// @Param dept path string true "Department"
// @Param id path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Router /{dept}/admin/documents/{id}/signed-url [get]
func (h *DocumentHandler) SignedURL(c *gin.Context) {
	token, expires, err := h.documents.SignedDownload(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": token, "expires_at": expires}, nil)
}
