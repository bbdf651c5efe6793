package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/usecase"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/valueobject"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/pkg/observability"
)

// DocumentHandler exposes document upload and verification over HTTP.
type DocumentHandler struct {
	uploadUC *usecase.UploadDocumentUseCase
	verifyUC *usecase.VerifyDocumentUseCase
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewDocumentHandler wires the document endpoints.
func NewDocumentHandler(
	uploadUC *usecase.UploadDocumentUseCase,
	verifyUC *usecase.VerifyDocumentUseCase,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		uploadUC: uploadUC,
		verifyUC: verifyUC,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterRoutes attaches the document routes to the given echo instance.
func (h *DocumentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/documents", h.Upload)
	e.POST("/api/v1/documents/:id/verify", h.Verify)
}

// Upload registers an uploaded document against an application.
func (h *DocumentHandler) Upload(c echo.Context) error {
	var req dto.UploadDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	resp, err := h.uploadUC.Execute(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, port.ErrApplicationNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "application not found"})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Verify runs the rule checks over a pending document's extracted fields.
func (h *DocumentHandler) Verify(c echo.Context) error {
	resp, err := h.verifyUC.Execute(c.Request().Context(), dto.VerifyDocumentRequest{
		DocumentID: c.Param("id"),
	})
	if err != nil {
		switch {
		case errors.Is(err, port.ErrDocumentNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "document not found"})
		case errors.Is(err, valueobject.ErrInvalidStatusTransition):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "document already verified"})
		default:
			h.logger.Error("document verification failed", "document_id", c.Param("id"), "error", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	h.metrics.VerificationsTotal.WithLabelValues(resp.Status).Inc()
	return c.JSON(http.StatusOK, resp)
}
