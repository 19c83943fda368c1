package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/services"
)

// ImportHandler handles roster uploads
type ImportHandler struct {
	rosterService services.RosterService
	timeout       time.Duration
}

// NewImportHandler creates a new import handler
func NewImportHandler(rosterService services.RosterService, timeout time.Duration) *ImportHandler {
	return &ImportHandler{
		rosterService: rosterService,
		timeout:       timeout,
	}
}

// Import accepts a CSV or XLSX roster in the multipart field "file" and
// returns the import report. A report with errors is still a 200; only a
// file rejected as a whole is an error response.
func (h *ImportHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorBody(
				apperrors.MalformedFile("file exceeds the upload size limit", err)))
			return
		}
		badRequest(c, "no roster file provided in field \"file\"", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(c, "failed to read uploaded file", err)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	report, err := h.rosterService.Import(ctx, data, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"importedCount": report.ImportedCount,
		"importedTeams": report.ImportedTeams,
		"errors":        report.Errors,
	})
}
