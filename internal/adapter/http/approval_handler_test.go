package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"support-desk/internal/apperrors"
	domainLoan "support-desk/internal/domain/loan"
	"support-desk/internal/testutil/loanmock"
	ucApproval "support-desk/internal/usecase/approval"
)

const goodComment = "Customer produced fresh income proof at branch"

func hasFieldDetail(details []apperrors.FieldError, field, contains string) bool {
	for _, d := range details {
		if d.Field == field && strings.Contains(d.Message, contains) {
			return true
		}
	}
	return false
}

func approveCtx(e *echo.Echo, ref, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans/"+ref+"/approve", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("rupeekLoanId")
	c.SetParamValues(ref)
	return c, rec
}

func rejectedLoanRepo() *loanmock.Repo {
	return &loanmock.Repo{
		GetByRupeekLoanIDFn: func(_ context.Context, ref string) (*domainLoan.Loan, error) {
			if ref != "7001910" {
				return nil, domainLoan.ErrNotFound
			}
			return &domainLoan.Loan{ID: "L-777", RupeekLoanID: ref, Status: domainLoan.StatusRejected}, nil
		},
		UpdateStatusFn: func(_ context.Context, id string, status domainLoan.Status, p domainLoan.StatusPatch) (*domainLoan.Loan, error) {
			l := &domainLoan.Loan{ID: id, RupeekLoanID: "7001910", Status: domainLoan.StatusRejected}
			l.ApplyStatus(status, p)
			return l, nil
		},
	}
}

func TestApproveLoan_Success(t *testing.T) {
	e := echo.New()
	now := time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)
	uc := ucApproval.NewUsecase(rejectedLoanRepo(), ucApproval.WithClock(func() time.Time { return now }))
	h := NewApprovalHandler(uc, zap.NewNop())

	c, rec := approveCtx(e, "7001910", `{"comment":"`+goodComment+`","approvedBy":"OP-17","loanId":"ignored"}`+"\n")
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string          `json:"message"`
		Loan    domainLoan.Loan `json:"loan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp.Message != "Loan approved successfully" {
		t.Fatalf("message = %q", resp.Message)
	}
	if resp.Loan.Status != domainLoan.StatusManuallyApproved || resp.Loan.RupeekLoanID != "7001910" {
		t.Fatalf("loan mismatch: %+v", resp.Loan)
	}
	if resp.Loan.ApprovedAt == nil || !resp.Loan.ApprovedAt.Equal(now) {
		t.Fatalf("approvedAt = %v, want %v", resp.Loan.ApprovedAt, now)
	}
}

func TestApproveLoan_BadJSON(t *testing.T) {
	e := echo.New()
	h := NewApprovalHandler(ucApproval.NewUsecase(&loanmock.Repo{}), zap.NewNop())

	valid := `{"comment":"` + goodComment + `","approvedBy":"OP-17"}`
	for _, body := range []string{`{"comment":`, `[1,2,3]`, `"text"`, valid + ` garbage`, valid + `}`, valid + `{}`} {
		c, rec := approveCtx(e, "7001910", body)
		if err := h.ApproveLoan(c); err != nil {
			t.Fatalf("ApproveLoan error: %v", err)
		}
		if rec.Code != stdhttp.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
		var er ErrorResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &er)
		if er.Message != "Invalid request body" {
			t.Fatalf("message = %q, want %q", er.Message, "Invalid request body")
		}
	}
}

func TestApproveLoan_ValidationError(t *testing.T) {
	e := echo.New()
	repo := &loanmock.Repo{
		GetByRupeekLoanIDFn: func(context.Context, string) (*domainLoan.Loan, error) {
			t.Fatalf("store must not be touched on invalid input")
			return nil, nil
		},
	}
	h := NewApprovalHandler(ucApproval.NewUsecase(repo), zap.NewNop())

	c, rec := approveCtx(e, "7001910", `{"comment":"too short","approvedBy":42}`)
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if er.Message != "Validation failed" {
		t.Fatalf("message = %q, want %q", er.Message, "Validation failed")
	}
	if !hasFieldDetail(er.Errors, "comment", "at least 20 characters") {
		t.Fatalf("missing comment error: %+v", er.Errors)
	}
	if !hasFieldDetail(er.Errors, "approvedBy", "Expected string") {
		t.Fatalf("missing approvedBy type error: %+v", er.Errors)
	}
}

func TestApproveLoan_EmptyBodyIsValidationError(t *testing.T) {
	e := echo.New()
	h := NewApprovalHandler(ucApproval.NewUsecase(&loanmock.Repo{}), zap.NewNop())

	c, rec := approveCtx(e, "7001910", "")
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if len(er.Errors) != 2 || !hasFieldDetail(er.Errors, "approvedBy", "Approver ID is required") {
		t.Fatalf("unexpected errors: %+v", er.Errors)
	}
}

func TestApproveLoan_NotFound(t *testing.T) {
	e := echo.New()
	h := NewApprovalHandler(ucApproval.NewUsecase(rejectedLoanRepo()), zap.NewNop())

	c, rec := approveCtx(e, "9999999", `{"comment":"`+goodComment+`","approvedBy":"OP-17"}`)
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Message != "Loan not found" {
		t.Fatalf("message = %q", er.Message)
	}
}

func TestApproveLoan_ServerErrors(t *testing.T) {
	tests := []struct {
		name     string
		updateFn func(context.Context, string, domainLoan.Status, domainLoan.StatusPatch) (*domainLoan.Loan, error)
		wantMsg  string
	}{
		{
			name: "loan vanished during update",
			updateFn: func(context.Context, string, domainLoan.Status, domainLoan.StatusPatch) (*domainLoan.Loan, error) {
				return nil, domainLoan.ErrNotFound
			},
			wantMsg: "Failed to update loan status",
		},
		{
			name: "store failure",
			updateFn: func(context.Context, string, domainLoan.Status, domainLoan.StatusPatch) (*domainLoan.Loan, error) {
				return nil, errors.New("disk full")
			},
			wantMsg: "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := rejectedLoanRepo()
			repo.UpdateStatusFn = tt.updateFn
			h := NewApprovalHandler(ucApproval.NewUsecase(repo), zap.NewNop())

			c, rec := approveCtx(echo.New(), "7001910", `{"comment":"`+goodComment+`","approvedBy":"OP-17"}`)
			if err := h.ApproveLoan(c); err != nil {
				t.Fatalf("ApproveLoan error: %v", err)
			}
			if rec.Code != stdhttp.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			var er ErrorResponse
			_ = json.Unmarshal(rec.Body.Bytes(), &er)
			if er.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", er.Message, tt.wantMsg)
			}
		})
	}
}
