package apis

import (
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func listChecklist(r *http.Request) (*httpx.Response, error) {
	tenancyID, err := uuidParam(r, "tenancyID")
	if err != nil {
		return nil, err
	}
	phase := r.URL.Query().Get("phase")
	items, aerr := portalmanager.ListChecklist(r.Context(), tenancyID, phase)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: items}, nil
}

// setChecklistItem accepts {"completed": true|false}.
func setChecklistItem(r *http.Request) (*httpx.Response, error) {
	itemID, err := uuidParam(r, "itemID")
	if err != nil {
		return nil, err
	}
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	completedField := gjson.GetBytes(body, "completed")
	if completedField.Type != gjson.True && completedField.Type != gjson.False {
		return nil, httpx.ErrInvalidRequest("missing completed flag")
	}
	item, aerr := portalmanager.SetChecklistItemCompleted(r.Context(), itemID, completedField.Bool())
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: item}, nil
}
