package apis

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func createUnit(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	unit, aerr := portalmanager.CreateUnit(r.Context(), body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/units/" + unit.UnitID.String(),
		Response:   unit,
	}, nil
}

func getUnit(r *http.Request) (*httpx.Response, error) {
	unitID, err := uuidParam(r, "unitID")
	if err != nil {
		return nil, err
	}
	unit, aerr := portalmanager.GetUnit(r.Context(), unitID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: unit}, nil
}

func updateUnit(r *http.Request) (*httpx.Response, error) {
	unitID, err := uuidParam(r, "unitID")
	if err != nil {
		return nil, err
	}
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	unit, aerr := portalmanager.UpdateUnit(r.Context(), unitID, body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: unit}, nil
}

func deleteUnit(r *http.Request) (*httpx.Response, error) {
	unitID, err := uuidParam(r, "unitID")
	if err != nil {
		return nil, err
	}
	if aerr := portalmanager.DeleteUnit(r.Context(), unitID); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

func listUnits(r *http.Request) (*httpx.Response, error) {
	units, aerr := portalmanager.ListUnits(r.Context())
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: units}, nil
}
