package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Health    *Handler
	Loans     *LoanHandler
	Approvals *ApprovalHandler
	// Optional.
	Metrics     http.Handler
	Idempotency echo.MiddlewareFunc
}

func (r Router) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	api := e.Group("/api")
	api.GET("/loans", r.Loans.ListLoans)
	api.GET("/loans/:rupeekLoanId", r.Loans.GetLoanDetails)

	var approveMW []echo.MiddlewareFunc
	if r.Idempotency != nil {
		approveMW = append(approveMW, r.Idempotency)
	}
	api.POST("/loans/:rupeekLoanId/approve", r.Approvals.ApproveLoan, approveMW...)
}
