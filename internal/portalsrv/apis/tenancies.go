package apis

import (
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func createTenancy(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	tenancy, aerr := portalmanager.CreateTenancy(r.Context(), body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/tenancies/" + tenancy.TenancyID.String(),
		Response:   tenancy,
	}, nil
}

func getTenancy(r *http.Request) (*httpx.Response, error) {
	tenancyID, err := uuidParam(r, "tenancyID")
	if err != nil {
		return nil, err
	}
	tenancy, aerr := portalmanager.GetTenancy(r.Context(), tenancyID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: tenancy}, nil
}

func getOwnTenancy(r *http.Request) (*httpx.Response, error) {
	tenancy, aerr := portalmanager.GetOwnTenancy(r.Context())
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: tenancy}, nil
}

func updateTenancy(r *http.Request) (*httpx.Response, error) {
	tenancyID, err := uuidParam(r, "tenancyID")
	if err != nil {
		return nil, err
	}
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	tenancy, aerr := portalmanager.UpdateTenancy(r.Context(), tenancyID, body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: tenancy}, nil
}

// endTenancy accepts an optional {"ends_on": "2026-08-31"} body; defaults to
// today.
func endTenancy(r *http.Request) (*httpx.Response, error) {
	tenancyID, err := uuidParam(r, "tenancyID")
	if err != nil {
		return nil, err
	}
	var endsOn time.Time
	if r.Body != nil {
		if body, rerr := readBody(r); rerr == nil {
			if ts := gjson.GetBytes(body, "ends_on").String(); ts != "" {
				parsed, perr := time.Parse("2006-01-02", ts)
				if perr != nil {
					return nil, httpx.ErrInvalidRequest("invalid ends_on date")
				}
				endsOn = parsed
			}
		}
	}
	if aerr := portalmanager.EndTenancy(r.Context(), tenancyID, endsOn); aerr != nil {
		return nil, aerr
	}
	tenancy, aerr := portalmanager.GetTenancy(r.Context(), tenancyID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: tenancy}, nil
}

func listTenancies(r *http.Request) (*httpx.Response, error) {
	tenancies, aerr := portalmanager.ListTenancies(r.Context())
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: tenancies}, nil
}
