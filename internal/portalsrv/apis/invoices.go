package apis

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func createInvoice(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	invoice, aerr := portalmanager.CreateInvoice(r.Context(), body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/invoices/" + invoice.InvoiceID.String(),
		Response:   invoice,
	}, nil
}

func getInvoice(r *http.Request) (*httpx.Response, error) {
	invoiceID, err := uuidParam(r, "invoiceID")
	if err != nil {
		return nil, err
	}
	invoice, aerr := portalmanager.GetInvoice(r.Context(), invoiceID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: invoice}, nil
}

func listInvoices(r *http.Request) (*httpx.Response, error) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.InvoiceStatusPending, models.InvoiceStatusPaid, models.InvoiceStatusVoid:
	default:
		return nil, httpx.ErrInvalidRequest("invalid status filter")
	}
	tenancyID, err := uuidQuery(r, "tenancy_id")
	if err != nil {
		return nil, err
	}
	invoices, aerr := portalmanager.ListInvoices(r.Context(), models.InvoiceFilter{
		TenancyID: tenancyID,
		Status:    status,
	})
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: invoices}, nil
}

func markInvoicePaid(r *http.Request) (*httpx.Response, error) {
	invoiceID, err := uuidParam(r, "invoiceID")
	if err != nil {
		return nil, err
	}
	invoice, aerr := portalmanager.MarkInvoicePaid(r.Context(), invoiceID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: invoice}, nil
}

func voidInvoice(r *http.Request) (*httpx.Response, error) {
	invoiceID, err := uuidParam(r, "invoiceID")
	if err != nil {
		return nil, err
	}
	invoice, aerr := portalmanager.VoidInvoice(r.Context(), invoiceID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: invoice}, nil
}
