package apis

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/pmcommon"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func createUser(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	user, aerr := portalmanager.CreateUser(r.Context(), body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/users/" + user.UserID.String(),
		Response:   user,
	}, nil
}

func listUsers(r *http.Request) (*httpx.Response, error) {
	role := pmcommon.Role(r.URL.Query().Get("role"))
	if role != "" && !role.Valid() {
		return nil, httpx.ErrInvalidRequest("invalid role")
	}
	users, aerr := portalmanager.ListUsers(r.Context(), role)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: users}, nil
}
