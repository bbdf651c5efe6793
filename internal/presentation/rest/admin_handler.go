package rest

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Sarthakmishra-code/SmartKoders-NBFC-Project/internal/application/usecase"
)

// AdminHandler exposes portfolio analytics for back-office consumers.
type AdminHandler struct {
	summaryUC *usecase.PortfolioSummaryUseCase
	logger    *slog.Logger
}

// NewAdminHandler wires the admin endpoints.
func NewAdminHandler(summaryUC *usecase.PortfolioSummaryUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{summaryUC: summaryUC, logger: logger}
}

// RegisterRoutes attaches the admin routes to the given echo instance.
func (h *AdminHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/admin/portfolio", h.Portfolio)
}

// Portfolio returns aggregate counts and averages over all applications.
func (h *AdminHandler) Portfolio(c echo.Context) error {
	resp, err := h.summaryUC.Execute(c.Request().Context())
	if err != nil {
		h.logger.Error("portfolio summary failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, resp)
}
