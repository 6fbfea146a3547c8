package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"support-desk/internal/usecase/loan"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log *zap.Logger
}

func NewLoanHandler(uc *loan.Usecase, log *zap.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

func (h *LoanHandler) GetLoanDetails(c echo.Context) error {
	details, err := h.uc.GetDetails(c.Request().Context(), c.Param("rupeekLoanId"))
	if err != nil {
		return respondError(c, h.log, err, msgInternal)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err, msgInternal)
	}
	return c.JSON(http.StatusOK, out)
}
