package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casahub/casahub-internal/internal/common/httpx"
)

var portalHandlers = []httpx.ResponseHandlerParam{
	// users
	{
		Method:  http.MethodPost,
		Path:    "/users",
		Handler: createUser,
	},
	{
		Method:  http.MethodGet,
		Path:    "/users",
		Handler: listUsers,
	},

	// units
	{
		Method:  http.MethodPost,
		Path:    "/units",
		Handler: createUnit,
	},
	{
		Method:  http.MethodGet,
		Path:    "/units",
		Handler: listUnits,
	},
	{
		Method:  http.MethodGet,
		Path:    "/units/{unitID}",
		Handler: getUnit,
	},
	{
		Method:  http.MethodPut,
		Path:    "/units/{unitID}",
		Handler: updateUnit,
	},
	{
		Method:  http.MethodDelete,
		Path:    "/units/{unitID}",
		Handler: deleteUnit,
	},

	// tenancies
	{
		Method:  http.MethodPost,
		Path:    "/tenancies",
		Handler: createTenancy,
	},
	{
		Method:  http.MethodGet,
		Path:    "/tenancies",
		Handler: listTenancies,
	},
	{
		Method:  http.MethodGet,
		Path:    "/tenancies/mine",
		Handler: getOwnTenancy,
	},
	{
		Method:  http.MethodGet,
		Path:    "/tenancies/{tenancyID}",
		Handler: getTenancy,
	},
	{
		Method:  http.MethodPut,
		Path:    "/tenancies/{tenancyID}",
		Handler: updateTenancy,
	},
	{
		Method:  http.MethodPost,
		Path:    "/tenancies/{tenancyID}/end",
		Handler: endTenancy,
	},
	{
		Method:  http.MethodGet,
		Path:    "/tenancies/{tenancyID}/checklist",
		Handler: listChecklist,
	},

	// checklist items
	{
		Method:  http.MethodPut,
		Path:    "/checklist-items/{itemID}",
		Handler: setChecklistItem,
	},

	// invoices
	{
		Method:  http.MethodPost,
		Path:    "/invoices",
		Handler: createInvoice,
	},
	{
		Method:  http.MethodGet,
		Path:    "/invoices",
		Handler: listInvoices,
	},
	{
		Method:  http.MethodGet,
		Path:    "/invoices/{invoiceID}",
		Handler: getInvoice,
	},
	{
		Method:  http.MethodPost,
		Path:    "/invoices/{invoiceID}/mark-paid",
		Handler: markInvoicePaid,
	},
	{
		Method:  http.MethodPost,
		Path:    "/invoices/{invoiceID}/void",
		Handler: voidInvoice,
	},

	// service requests
	{
		Method:  http.MethodPost,
		Path:    "/service-requests",
		Handler: createServiceRequest,
	},
	{
		Method:  http.MethodGet,
		Path:    "/service-requests",
		Handler: listServiceRequests,
	},
	{
		Method:  http.MethodGet,
		Path:    "/service-requests/{requestID}",
		Handler: getServiceRequest,
	},
	{
		Method:  http.MethodPut,
		Path:    "/service-requests/{requestID}",
		Handler: updateServiceRequest,
	},
	{
		Method:  http.MethodDelete,
		Path:    "/service-requests/{requestID}",
		Handler: deleteServiceRequest,
	},

	// insurance
	{
		Method:  http.MethodPost,
		Path:    "/insurance",
		Handler: fileInsurance,
	},
	{
		Method:  http.MethodGet,
		Path:    "/insurance",
		Handler: listInsurance,
	},
	{
		Method:  http.MethodGet,
		Path:    "/insurance/{insuranceID}",
		Handler: getInsurance,
	},
	{
		Method:  http.MethodPost,
		Path:    "/insurance/{insuranceID}/review",
		Handler: reviewInsurance,
	},

	// calendar
	{
		Method:  http.MethodPost,
		Path:    "/calendar-events",
		Handler: createCalendarEvent,
	},
	{
		Method:  http.MethodGet,
		Path:    "/calendar-events",
		Handler: listCalendarEvents,
	},
	{
		Method:  http.MethodGet,
		Path:    "/calendar-events/{eventID}",
		Handler: getCalendarEvent,
	},
	{
		Method:  http.MethodPut,
		Path:    "/calendar-events/{eventID}",
		Handler: updateCalendarEvent,
	},
	{
		Method:  http.MethodDelete,
		Path:    "/calendar-events/{eventID}",
		Handler: deleteCalendarEvent,
	},
}

// adminHandlers are reachable by admin sessions only; the server mounts them
// behind auth.AdminOnly. The payment intake review queue and the email
// notification log expose other tenants' data and settle invoices, so they
// never share the tenant-visible table above.
var adminHandlers = []httpx.ResponseHandlerParam{
	// payment intake review
	{
		Method:  http.MethodGet,
		Path:    "/payment-intake",
		Handler: listPaymentIntake,
	},
	{
		Method:  http.MethodGet,
		Path:    "/payment-intake/{intakeID}",
		Handler: getPaymentIntake,
	},
	{
		Method:  http.MethodPost,
		Path:    "/payment-intake/{intakeID}/resolve",
		Handler: resolvePaymentIntake,
	},
	{
		Method:  http.MethodPost,
		Path:    "/payment-intake/{intakeID}/dismiss",
		Handler: dismissPaymentIntake,
	},

	// email notification log
	{
		Method:  http.MethodGet,
		Path:    "/notifications",
		Handler: listNotifications,
	},
}

// Router mounts the authenticated portal API. Session and scoped db
// middleware are applied by the server.
func Router(r chi.Router) {
	for _, handler := range portalHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}

// AdminRouter mounts the admin-only API. The server applies the admin gate
// in addition to the session and scoped db middleware.
func AdminRouter(r chi.Router) {
	for _, handler := range adminHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
