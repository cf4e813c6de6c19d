package auth

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

// SessionMiddleware authenticates the request from the session cookie and
// loads the user and org scope into the request context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			httpx.ErrUnAuthorized("missing session").Send(w)
			return
		}
		claims, aerr := ParseSessionToken(r.Context(), cookie.Value)
		if aerr != nil {
			httpx.ErrUnAuthorized(aerr.Error()).Send(w)
			return
		}
		ctx := pmcommon.SetUserContext(r.Context(), &pmcommon.UserContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		ctx = pmcommon.SetOrgIdInContext(ctx, claims.OrgID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects requests from non-admin users. It must be mounted inside
// SessionMiddleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !pmcommon.IsAdmin(r.Context()) {
			httpx.ErrForbidden("admin access required").Send(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// JobKeyMiddleware authenticates webhook and cron-trigger requests via the
// shared job key header. These endpoints carry no user session; the org
// scope comes from configuration.
func JobKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-CasaHub-Job-Key")
		if key == "" || key != config.Config().JobKey {
			httpx.ErrMissingJobKey().Send(w)
			return
		}
		ctx := pmcommon.SetOrgIdInContext(r.Context(), pmcommon.OrgId(config.Config().DefaultOrgID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
