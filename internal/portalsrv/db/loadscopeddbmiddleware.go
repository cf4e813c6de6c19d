package db

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/httpx"
)

// LoadScopedDB is a middleware that attaches a scoped db connection to the
// request context and closes it after the request is served.
func LoadScopedDB(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ConnCtx(r.Context())
		if DB(ctx) == nil {
			log.Ctx(r.Context()).Error().Msg("unable to get db connection")
			httpx.ErrApplicationError("unable to service request at this time").Send(w)
			return
		}
		defer func() {
			if dbConn := DB(ctx); dbConn != nil {
				dbConn.Close(context.Background()) // use background to avoid canceled context
			}
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
