package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"support-desk/internal/domain/branch"
	"support-desk/internal/domain/customer"
	domain "support-desk/internal/domain/loan"
	"support-desk/internal/testutil/branchmock"
	"support-desk/internal/testutil/customermock"
	"support-desk/internal/testutil/loanmock"
	uc "support-desk/internal/usecase/loan"
)

// -------- helpers --------

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func newLoanHandler(loans *loanmock.Repo, customers *customermock.Repo, branches *branchmock.Repo, log *zap.Logger) *LoanHandler {
	return NewLoanHandler(uc.NewUsecase(loans, customers, branches, nil), log)
}

func getCtx(e *echo.Echo, path, ref string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ref != "" {
		c.SetParamNames("rupeekLoanId")
		c.SetParamValues(ref)
	}
	return c, rec
}

// -------- tests --------

func TestGetLoanDetails_Success(t *testing.T) {
	e := echo.New()
	h := newLoanHandler(
		&loanmock.Repo{GetByRupeekLoanIDFn: func(_ context.Context, ref string) (*domain.Loan, error) {
			return &domain.Loan{ID: "L-1", RupeekLoanID: ref, CustomerID: "C-1", Status: domain.StatusRejected}, nil
		}},
		&customermock.Repo{GetByIDFn: func(_ context.Context, id string) (*customer.Customer, error) {
			return &customer.Customer{ID: id, Name: "Kiran Kempegowda"}, nil
		}},
		&branchmock.Repo{FirstFn: func(context.Context) (*branch.Branch, error) {
			return &branch.Branch{ID: "B-1", Name: "Jayanagar"}, nil
		}},
		zap.NewNop(),
	)

	c, rec := getCtx(e, "/api/loans/7001910", "7001910")
	if err := h.GetLoanDetails(c); err != nil {
		t.Fatalf("GetLoanDetails error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got struct {
		Loan     map[string]any `json:"loan"`
		Customer map[string]any `json:"customer"`
		Branch   map[string]any `json:"branch"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Loan["rupeekLoanId"] != "7001910" || got.Loan["status"] != "rejected" {
		t.Fatalf("loan mismatch: %v", got.Loan)
	}
	if got.Customer["name"] != "Kiran Kempegowda" || got.Branch["name"] != "Jayanagar" {
		t.Fatalf("details mismatch: %+v", got)
	}
}

func TestGetLoanDetails_NotFound(t *testing.T) {
	e := echo.New()
	h := newLoanHandler(
		&loanmock.Repo{GetByRupeekLoanIDFn: func(context.Context, string) (*domain.Loan, error) {
			return nil, domain.ErrNotFound
		}},
		&customermock.Repo{}, &branchmock.Repo{}, zap.NewNop(),
	)

	c, rec := getCtx(e, "/api/loans/9999999", "9999999")
	if err := h.GetLoanDetails(c); err != nil {
		t.Fatalf("GetLoanDetails error: %v", err)
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

func TestGetLoanDetails_InternalErrorIsOpaqueAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	e := echo.New()
	h := newLoanHandler(
		&loanmock.Repo{GetByRupeekLoanIDFn: func(context.Context, string) (*domain.Loan, error) {
			return nil, errors.New("dial tcp 10.0.0.5:3306: connection refused")
		}},
		&customermock.Repo{}, &branchmock.Repo{}, zap.New(core),
	)

	c, rec := getCtx(e, "/api/loans/7001910", "7001910")
	if err := h.GetLoanDetails(c); err != nil {
		t.Fatalf("GetLoanDetails error: %v", err)
	}
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("10.0.0.5")) {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Message != "Internal server error" {
		t.Fatalf("message = %q", er.Message)
	}
	if logs.Len() != 1 {
		t.Fatalf("want 1 error log, got %d", logs.Len())
	}
}

func TestListLoans(t *testing.T) {
	e := echo.New()
	h := newLoanHandler(
		&loanmock.Repo{ListFn: func(context.Context) ([]domain.Loan, error) {
			return []domain.Loan{
				{RupeekLoanID: "7001911", CustomerID: "C-1", TotalAmount: 500000, LoanDate: "20 Apr 2024", Status: domain.StatusPending},
			}, nil
		}},
		&customermock.Repo{GetByIDFn: func(_ context.Context, id string) (*customer.Customer, error) {
			return &customer.Customer{ID: id, Name: "Rajesh Kumar"}, nil
		}},
		&branchmock.Repo{}, zap.NewNop(),
	)

	c, rec := getCtx(e, "/api/loans", "")
	if err := h.ListLoans(c); err != nil {
		t.Fatalf("ListLoans error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []uc.LoanSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got) != 1 || got[0].CustomerName != "Rajesh Kumar" || got[0].LoanDate != "20 Apr 2024" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListLoans_Empty(t *testing.T) {
	e := echo.New()
	h := newLoanHandler(&loanmock.Repo{}, &customermock.Repo{}, &branchmock.Repo{}, zap.NewNop())

	c, rec := getCtx(e, "/api/loans", "")
	if err := h.ListLoans(c); err != nil {
		t.Fatalf("ListLoans error: %v", err)
	}
	if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != "[]" {
		t.Fatalf("empty list should render as [], got %s", got)
	}
}
