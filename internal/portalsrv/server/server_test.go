package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/casahub-internal/internal/portalsrv/auth"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

func executeTestRequest(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	s, err := CreateNewServer()
	assert.NoError(t, err, "create new server")

	s.MountHandlers()

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func compareJson(t *testing.T, expected any, actual string) {
	j, err := json.Marshal(expected)
	assert.NoError(t, err, "json marshal")
	assert.JSONEq(t, string(j), actual, "Expected: %v\n Got: %v\n", expected, actual)
}

func TestGetVersion(t *testing.T) {
	req, _ := http.NewRequest("GET", "/version", nil)
	response := executeTestRequest(t, req)

	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "application/json", response.Result().Header.Get("Content-Type"))

	compareJson(t,
		&GetVersionRsp{
			ServerVersion: "CasaHub Portal Server: 0.1.0",
			ApiVersion:    "v1alpha1",
		}, response.Body.String())
}

func TestPortalRequiresSession(t *testing.T) {
	paths := []string{"/units", "/tenancies", "/invoices", "/service-requests", "/calendar-events"}
	for _, path := range paths {
		req, _ := http.NewRequest("GET", path, nil)
		response := executeTestRequest(t, req)
		assert.Equal(t, http.StatusUnauthorized, response.Code, "expected 401 for %s without a session", path)
	}
}

func TestPortalRejectsGarbageSession(t *testing.T) {
	req, _ := http.NewRequest("GET", "/units", nil)
	req.AddCookie(&http.Cookie{Name: "casahub_session", Value: "not-a-token"})
	response := executeTestRequest(t, req)
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func sessionCookie(t *testing.T, role pmcommon.Role) *http.Cookie {
	t.Helper()
	uc := &pmcommon.UserContext{
		UserID: uuid.New(),
		Email:  string(role) + "@test.local",
		Role:   role,
	}
	token, _, err := auth.CreateSessionToken(context.Background(), uc, pmcommon.OrgId(config.Config().DefaultOrgID))
	require.Nil(t, err, "create session token")
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

// The payment intake queue and the notification log are admin surfaces; a
// tenant session must be turned away before any data access happens.
func TestAdminSurfacesRejectTenantSession(t *testing.T) {
	cookie := sessionCookie(t, pmcommon.RoleTenant)
	requests := []struct {
		method string
		path   string
	}{
		{"GET", "/payment-intake"},
		{"GET", "/payment-intake/" + uuid.NewString()},
		{"POST", "/payment-intake/" + uuid.NewString() + "/resolve"},
		{"POST", "/payment-intake/" + uuid.NewString() + "/dismiss"},
		{"GET", "/notifications"},
	}
	for _, tt := range requests {
		req, _ := http.NewRequest(tt.method, tt.path, nil)
		req.AddCookie(cookie)
		response := executeTestRequest(t, req)
		assert.Equal(t, http.StatusForbidden, response.Code, "%s %s should require an admin session", tt.method, tt.path)
	}
}

func TestAdminSurfacesRequireSession(t *testing.T) {
	req, _ := http.NewRequest("GET", "/payment-intake", nil)
	response := executeTestRequest(t, req)
	assert.Equal(t, http.StatusUnauthorized, response.Code)
}

func TestJobEndpointsRequireKey(t *testing.T) {
	tests := []struct {
		path string
		key  string
		code int
	}{
		{"/webhooks/etransfer", "", http.StatusUnauthorized},
		{"/jobs/invoice-run", "", http.StatusUnauthorized},
		{"/webhooks/etransfer", "wrong-key", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req, _ := http.NewRequest("POST", tt.path, nil)
		if tt.key != "" {
			req.Header.Set("X-CasaHub-Job-Key", tt.key)
		}
		response := executeTestRequest(t, req)
		assert.Equal(t, tt.code, response.Code, "path %s key %q", tt.path, tt.key)
	}
}
