package dberror

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
)

var (
	ErrDatabase       apperrors.Error = apperrors.New("db error").SetStatusCode(http.StatusInternalServerError)
	ErrAlreadyExists  apperrors.Error = ErrDatabase.New("already exists").SetStatusCode(http.StatusConflict)
	ErrNotFound       apperrors.Error = ErrDatabase.New("not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidInput   apperrors.Error = ErrDatabase.New("invalid input").SetStatusCode(http.StatusBadRequest)
	ErrInvalidUnit    apperrors.Error = ErrDatabase.New("invalid unit").SetStatusCode(http.StatusBadRequest)
	ErrInvalidTenancy apperrors.Error = ErrDatabase.New("invalid tenancy").SetStatusCode(http.StatusBadRequest)
	ErrInvalidInvoice apperrors.Error = ErrDatabase.New("invalid invoice").SetStatusCode(http.StatusBadRequest)
	ErrMissingOrgID   apperrors.Error = ErrInvalidInput.New("missing organisation ID").SetStatusCode(http.StatusBadRequest)
)
