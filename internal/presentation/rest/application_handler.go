package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/dto"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/usecase"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/port"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/domain/service"
	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/pkg/observability"
)

// ApplicationHandler exposes the loan-application lifecycle over HTTP.
type ApplicationHandler struct {
	submitUC *usecase.SubmitApplicationUseCase
	assessUC *usecase.AssessEligibilityUseCase
	decideUC *usecase.MakeDecisionUseCase
	getUC    *usecase.GetApplicationUseCase
	offerUC  *usecase.GetOfferLetterUseCase
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewApplicationHandler wires the application endpoints.
func NewApplicationHandler(
	submitUC *usecase.SubmitApplicationUseCase,
	assessUC *usecase.AssessEligibilityUseCase,
	decideUC *usecase.MakeDecisionUseCase,
	getUC *usecase.GetApplicationUseCase,
	offerUC *usecase.GetOfferLetterUseCase,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		submitUC: submitUC,
		assessUC: assessUC,
		decideUC: decideUC,
		getUC:    getUC,
		offerUC:  offerUC,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterRoutes attaches the application routes to the given echo instance.
func (h *ApplicationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/applications", h.Submit)
	e.GET("/api/v1/applications/:id", h.Get)
	e.GET("/api/v1/applications/:id/documents", h.Documents)
	e.GET("/api/v1/applicants/:id/applications", h.ListByApplicant)
	e.POST("/api/v1/applications/:id/assess", h.Assess)
	e.POST("/api/v1/applications/:id/decision", h.Decide)
	e.POST("/api/v1/applications/:id/offer-letter", h.OfferLetter)
}

// Submit opens a new loan application.
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req dto.SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	resp, err := h.submitUC.Execute(c.Request().Context(), req)
	if err != nil {
		// Creation failures here are input-derived (bad employment type,
		// non-positive amounts) unless the store itself errored.
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Get returns one application by ID.
func (h *ApplicationHandler) Get(c echo.Context) error {
	resp, err := h.getUC.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.applicationError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListByApplicant returns all applications filed by one applicant, newest
// first.
func (h *ApplicationHandler) ListByApplicant(c echo.Context) error {
	resp, err := h.getUC.ListByApplicant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.applicationError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Documents returns the documents attached to an application.
func (h *ApplicationHandler) Documents(c echo.Context) error {
	resp, err := h.getUC.Documents(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.applicationError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Assess runs the eligibility assessment and persists the result.
func (h *ApplicationHandler) Assess(c echo.Context) error {
	resp, err := h.assessUC.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.applicationError(c, err)
	}
	if resp.Assessment != nil {
		h.metrics.AssessmentsTotal.WithLabelValues(boolLabel(resp.Assessment.Eligible)).Inc()
	}
	return c.JSON(http.StatusOK, resp)
}

// Decide runs the decision chain and returns the outcome with its rule
// trace.
func (h *ApplicationHandler) Decide(c echo.Context) error {
	resp, err := h.decideUC.Execute(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.applicationError(c, err)
	}
	h.metrics.DecisionsTotal.WithLabelValues(resp.Status).Inc()
	return c.JSON(http.StatusOK, resp)
}

type offerLetterReq struct {
	ApplicantName  string `json:"applicant_name" validate:"required"`
	ApplicantEmail string `json:"applicant_email"`
	ApplicantPhone string `json:"applicant_phone"`
}

// OfferLetter generates the sanction letter for an approved application.
func (h *ApplicationHandler) OfferLetter(c echo.Context) error {
	var req offerLetterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	letter, err := h.offerUC.Execute(c.Request().Context(), c.Param("id"), service.OfferApplicant{
		Name:  req.ApplicantName,
		Email: req.ApplicantEmail,
		Phone: req.ApplicantPhone,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrNotApproved) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		}
		return h.applicationError(c, err)
	}
	return c.JSON(http.StatusOK, letter)
}

func (h *ApplicationHandler) applicationError(c echo.Context, err error) error {
	if errors.Is(err, port.ErrApplicationNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "application not found"})
	}
	h.logger.Error("application request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
