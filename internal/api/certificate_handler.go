package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/innovatefest/hackathon-api/internal/errors"
	"github.com/innovatefest/hackathon-api/internal/models"
	"github.com/innovatefest/hackathon-api/internal/services"
)

// CertificateHandler issues and verifies certificates
type CertificateHandler struct {
	certificateService services.CertificateService
	timeout            time.Duration
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(certificateService services.CertificateService, timeout time.Duration) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
		timeout:            timeout,
	}
}

// Generate issues certificates for every member of the selected teams
// (Admin only). Failures carry success=false so the UI can branch on a
// single field.
func (h *CertificateHandler) Generate(c *gin.Context) {
	var req models.CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperrors.InvalidInput("invalid certificate request", err))
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	certs, err := h.certificateService.Generate(ctx, req.TeamIDs, req.CertificateType)
	if err != nil {
		h.fail(c, err)
		return
	}

	ids := make([]string, len(certs))
	for i, cert := range certs {
		ids[i] = cert.ID.String()
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"certificateIds": ids,
	})
}

func (h *CertificateHandler) fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		_ = c.Error(err)
	}
	body := errorBody(err)
	body["success"] = false
	c.AbortWithStatusJSON(status, body)
}

// Verify returns the public view of a certificate. No authentication.
func (h *CertificateHandler) Verify(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	view, err := h.certificateService.Verify(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
