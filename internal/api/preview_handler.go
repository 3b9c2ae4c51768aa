package api

import (
	"net/http"

	"plateful/internal/service"

	"github.com/gin-gonic/gin"
)

// PreviewHandler holds the link preview service dependency.
type PreviewHandler struct {
	previewService service.PreviewService
}

// NewPreviewHandler creates a new PreviewHandler.
func NewPreviewHandler(previewService service.PreviewService) *PreviewHandler {
	return &PreviewHandler{previewService: previewService}
}

// GetPreview handles GET /preview?url=... Fetch/parse failures are
// reported in the body so the form can degrade instead of erroring.
func (h *PreviewHandler) GetPreview(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'url' is required.")
		return
	}

	preview := h.previewService.FetchPreview(c.Request.Context(), rawURL)
	c.JSON(http.StatusOK, preview)
}
