package apis

import (
	"net/http"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func createServiceRequest(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	sr, aerr := portalmanager.CreateServiceRequest(r.Context(), body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/service-requests/" + sr.RequestID.String(),
		Response:   sr,
	}, nil
}

func getServiceRequest(r *http.Request) (*httpx.Response, error) {
	requestID, err := uuidParam(r, "requestID")
	if err != nil {
		return nil, err
	}
	sr, aerr := portalmanager.GetServiceRequest(r.Context(), requestID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: sr}, nil
}

func updateServiceRequest(r *http.Request) (*httpx.Response, error) {
	requestID, err := uuidParam(r, "requestID")
	if err != nil {
		return nil, err
	}
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	sr, aerr := portalmanager.UpdateServiceRequest(r.Context(), requestID, body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: sr}, nil
}

func deleteServiceRequest(r *http.Request) (*httpx.Response, error) {
	requestID, err := uuidParam(r, "requestID")
	if err != nil {
		return nil, err
	}
	if aerr := portalmanager.DeleteServiceRequest(r.Context(), requestID); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

func listServiceRequests(r *http.Request) (*httpx.Response, error) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.RequestStatusOpen, models.RequestStatusInProgress,
		models.RequestStatusResolved, models.RequestStatusCancelled:
	default:
		return nil, httpx.ErrInvalidRequest("invalid status filter")
	}
	tenancyID, err := uuidQuery(r, "tenancy_id")
	if err != nil {
		return nil, err
	}
	requests, aerr := portalmanager.ListServiceRequests(r.Context(), models.RequestFilter{
		TenancyID: tenancyID,
		Status:    status,
	})
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: requests}, nil
}
