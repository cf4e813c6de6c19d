package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/config"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Org      string `json:"org,omitempty"`
}

type loginRsp struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// login authenticates credentials and sets the session cookie. Raw handler
// rather than a wrapped one since it writes a cookie.
func login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.GetRequestData(r, &req); err != nil {
		httpx.ErrUnableToParseReqData().Send(w)
		return
	}

	orgID := pmcommon.OrgId(req.Org)
	if orgID == "" {
		orgID = pmcommon.OrgId(config.Config().DefaultOrgID)
	}
	ctx := pmcommon.SetOrgIdInContext(r.Context(), orgID)

	uc, err := Login(ctx, req.Email, req.Password)
	if err != nil {
		httpx.SendError(w, err)
		return
	}
	token, expiry, err := CreateSessionToken(ctx, uc, orgID)
	if err != nil {
		httpx.SendError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.SendJsonRsp(ctx, w, http.StatusOK, &loginRsp{
		UserID:    uc.UserID.String(),
		Email:     uc.Email,
		Role:      string(uc.Role),
		ExpiresAt: expiry,
	})
}

// logout clears the session cookie. The token itself simply expires; there
// is no server-side revocation list.
func logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{"status": "logged_out"})
}

type meRsp struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Org    string `json:"org"`
}

func me(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	uc := pmcommon.GetUserContext(ctx)
	if uc == nil {
		return nil, httpx.ErrUnAuthorized()
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &meRsp{
			UserID: uc.UserID.String(),
			Email:  uc.Email,
			Role:   string(uc.Role),
			Org:    string(pmcommon.OrgIdFromContext(ctx)),
		},
	}, nil
}

// Router mounts the auth endpoints. login and logout live outside the
// session middleware; me requires an authenticated session.
func Router(r chi.Router) {
	r.Post("/login", login)
	r.Post("/logout", logout)
	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware)
		r.Method(http.MethodGet, "/me", httpx.WrapHttpRsp(me))
	})
}
