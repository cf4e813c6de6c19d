package httpx

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SendJsonRsp writes a JSON response with the given status code. An optional
// location argument sets the Location header for 201/202 responses. A nil
// body results in an empty response with just the headers set.
func SendJsonRsp(ctx context.Context, w http.ResponseWriter, statusCode int, rsp any, location ...string) {
	w.Header().Set("Content-Type", "application/json")
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}
	if rsp == nil {
		w.WriteHeader(statusCode)
		return
	}
	rspJson, err := jsonAPI.Marshal(rsp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to marshal response")
		ErrApplicationError("unable to marshal response").Send(w)
		return
	}
	w.WriteHeader(statusCode)
	if _, err := w.Write(rspJson); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to write response")
	}
}
