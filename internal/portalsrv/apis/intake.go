package apis

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/payments"
)

func getPaymentIntake(r *http.Request) (*httpx.Response, error) {
	intakeID, err := uuidParam(r, "intakeID")
	if err != nil {
		return nil, err
	}
	intake, aerr := db.DB(r.Context()).GetPaymentIntake(r.Context(), intakeID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: intake}, nil
}

func listPaymentIntake(r *http.Request) (*httpx.Response, error) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.IntakeStatusMatched, models.IntakeStatusNeedsReview, models.IntakeStatusDismissed:
	default:
		return nil, httpx.ErrInvalidRequest("invalid status filter")
	}
	intakes, aerr := db.DB(r.Context()).ListPaymentIntake(r.Context(), status)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: intakes}, nil
}

// resolvePaymentIntake manually matches an intake to an invoice:
// {"invoice_id": "...", "note": "..."}.
func resolvePaymentIntake(r *http.Request) (*httpx.Response, error) {
	intakeID, err := uuidParam(r, "intakeID")
	if err != nil {
		return nil, err
	}
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	invoiceID, perr := uuid.Parse(gjson.GetBytes(body, "invoice_id").String())
	if perr != nil {
		return nil, httpx.ErrInvalidRequest("invalid invoice_id")
	}
	note := gjson.GetBytes(body, "note").String()

	intake, aerr := payments.ResolveIntake(r.Context(), intakeID, invoiceID, note)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: intake}, nil
}

func dismissPaymentIntake(r *http.Request) (*httpx.Response, error) {
	intakeID, err := uuidParam(r, "intakeID")
	if err != nil {
		return nil, err
	}
	note := ""
	if r.Body != nil {
		if body, rerr := readBody(r); rerr == nil {
			note = gjson.GetBytes(body, "note").String()
		}
	}
	intake, aerr := payments.DismissIntake(r.Context(), intakeID, note)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: intake}, nil
}
