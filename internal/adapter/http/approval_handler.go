package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"support-desk/internal/domain/loan"
	"support-desk/internal/usecase/approval"
)

type ApprovalHandler struct {
	uc  *approval.Usecase
	log *zap.Logger
}

func NewApprovalHandler(uc *approval.Usecase, log *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, log: log}
}

type approveLoanResp struct {
	Message string     `json:"message"`
	Loan    *loan.Loan `json:"loan"`
}

func (h *ApprovalHandler) ApproveLoan(c echo.Context) error {
	body, err := decodeObject(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidBody})
	}

	l, err := h.uc.Submit(c.Request().Context(), c.Param("rupeekLoanId"), body)
	if err != nil {
		msg := msgInternal
		if errors.Is(err, approval.ErrUpdateFailed) {
			msg = msgUpdateFailed
		}
		return respondError(c, h.log, err, msg)
	}
	return c.JSON(http.StatusOK, approveLoanResp{Message: msgApproved, Loan: l})
}

// decodeObject reads exactly one JSON object, or nothing. The body stays
// loosely typed; the usecase reports wrong types per field.
func decodeObject(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON body")
	}
	return body, nil
}
