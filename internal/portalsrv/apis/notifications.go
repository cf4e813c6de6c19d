package apis

import (
	"net/http"
	"strconv"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
)

func listNotifications(r *http.Request) (*httpx.Response, error) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 1000 {
			return nil, httpx.ErrInvalidRequest("invalid limit")
		}
		limit = parsed
	}
	notifications, aerr := db.DB(r.Context()).ListEmailNotifications(r.Context(), limit)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: notifications}, nil
}
