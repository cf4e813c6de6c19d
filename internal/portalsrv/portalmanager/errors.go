package portalmanager

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
)

var (
	ErrPortalError apperrors.Error = apperrors.New("portal error").SetStatusCode(http.StatusInternalServerError)

	ErrInvalidSchema      = ErrPortalError.New("invalid request body").SetStatusCode(http.StatusBadRequest)
	ErrValidationFailed   = ErrPortalError.New("request validation failed").SetStatusCode(http.StatusBadRequest).SetExpandError(true)
	ErrNotAuthorized      = ErrPortalError.New("not authorized for this resource").SetStatusCode(http.StatusForbidden)
	ErrNoActiveTenancy    = ErrPortalError.New("no active tenancy for user").SetStatusCode(http.StatusNotFound)
	ErrInvoiceAlreadyPaid = ErrPortalError.New("invoice already paid").SetStatusCode(http.StatusConflict)
	ErrInvoiceNotPending  = ErrPortalError.New("invoice is not pending").SetStatusCode(http.StatusConflict)
	ErrAlreadyReviewed    = ErrPortalError.New("record already reviewed").SetStatusCode(http.StatusConflict)
	ErrBadStatusChange    = ErrPortalError.New("status transition not allowed").SetStatusCode(http.StatusConflict)
)
