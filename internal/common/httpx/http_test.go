package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
)

func TestWrapHttpRsp(t *testing.T) {
	t.Run("sends json response", func(t *testing.T) {
		h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
			return &Response{
				StatusCode: http.StatusCreated,
				Location:   "/invoices/abc",
				Response:   map[string]string{"status": "pending"},
			}, nil
		})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/invoices", nil))
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, "/invoices/abc", rr.Header().Get("Location"))
		assert.JSONEq(t, `{"status":"pending"}`, rr.Body.String())
	})

	t.Run("maps apperrors to status code", func(t *testing.T) {
		errConflict := apperrors.New("insurance already approved").SetStatusCode(http.StatusConflict)
		h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
			return nil, errConflict
		})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/insurance/x/review", nil))
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "insurance already approved")
	})

	t.Run("plain errors become 500", func(t *testing.T) {
		h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
			return nil, assert.AnError
		})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/units", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("nil response is an application error", func(t *testing.T) {
		h := WrapHttpRsp(func(r *http.Request) (*Response, error) {
			return nil, nil
		})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/units", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetRequestData(t *testing.T) {
	type loginReq struct {
		Email string `json:"email"`
	}
	var req loginReq

	r := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	err := GetRequestData(r, &req)
	assert.ErrorIs(t, err, ErrReqMethodNotSupported())
}
