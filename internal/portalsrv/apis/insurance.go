package apis

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func fileInsurance(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	rec, aerr := portalmanager.FileInsurance(r.Context(), body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/insurance/" + rec.InsuranceID.String(),
		Response:   rec,
	}, nil
}

func getInsurance(r *http.Request) (*httpx.Response, error) {
	insuranceID, err := uuidParam(r, "insuranceID")
	if err != nil {
		return nil, err
	}
	rec, aerr := portalmanager.GetInsurance(r.Context(), insuranceID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rec}, nil
}

func listInsurance(r *http.Request) (*httpx.Response, error) {
	tenancyID, err := uuidQuery(r, "tenancy_id")
	if err != nil {
		return nil, err
	}
	records, aerr := portalmanager.ListInsurance(r.Context(), tenancyID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: records}, nil
}

func reviewInsurance(r *http.Request) (*httpx.Response, error) {
	insuranceID, err := uuidParam(r, "insuranceID")
	if err != nil {
		return nil, err
	}
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	rec, aerr := portalmanager.ReviewInsurance(r.Context(), insuranceID, body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rec}, nil
}
