package apis

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/billing"
	"github.com/casahub/casahub-internal/internal/portalsrv/payments"
)

// etransferWebhook receives a bank payment notification and runs
// reconciliation. Always returns the stored intake record so the sender can
// observe the outcome.
func etransferWebhook(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	payload, aerr := payments.ParseIntakePayload(body)
	if aerr != nil {
		return nil, aerr
	}
	intake, aerr := payments.ProcessIntake(r.Context(), payload)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: intake}, nil
}

// invoiceRun triggers the invoice sweep outside the in-process schedule,
// typically from an external cron.
func invoiceRun(r *http.Request) (*httpx.Response, error) {
	result, aerr := billing.RunInvoiceSweep(r.Context(), time.Now())
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: result}, nil
}

var jobHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodPost,
		Path:    "/webhooks/etransfer",
		Handler: etransferWebhook,
	},
	{
		Method:  http.MethodPost,
		Path:    "/jobs/invoice-run",
		Handler: invoiceRun,
	},
}

// JobRouter mounts the shared-secret endpoints. The job key middleware and
// scoped db are applied by the server.
func JobRouter(r chi.Router) {
	for _, handler := range jobHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
