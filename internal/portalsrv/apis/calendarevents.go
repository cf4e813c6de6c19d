package apis

import (
	"net/http"
	"time"

	"github.com/casahub/casahub-internal/internal/common/httpx"
	"github.com/casahub/casahub-internal/internal/portalsrv/portalmanager"
)

func createCalendarEvent(r *http.Request) (*httpx.Response, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	event, aerr := portalmanager.CreateCalendarEvent(r.Context(), body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/calendar-events/" + event.EventID.String(),
		Response:   event,
	}, nil
}

func getCalendarEvent(r *http.Request) (*httpx.Response, error) {
	eventID, err := uuidParam(r, "eventID")
	if err != nil {
		return nil, err
	}
	event, aerr := portalmanager.GetCalendarEvent(r.Context(), eventID)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: event}, nil
}

func updateCalendarEvent(r *http.Request) (*httpx.Response, error) {
	eventID, err := uuidParam(r, "eventID")
	if err != nil {
		return nil, err
	}
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	event, aerr := portalmanager.UpdateCalendarEvent(r.Context(), eventID, body)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: event}, nil
}

func deleteCalendarEvent(r *http.Request) (*httpx.Response, error) {
	eventID, err := uuidParam(r, "eventID")
	if err != nil {
		return nil, err
	}
	if aerr := portalmanager.DeleteCalendarEvent(r.Context(), eventID); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

// listCalendarEvents accepts optional ?from=/&to= date bounds (RFC 3339 or
// plain dates).
func listCalendarEvents(r *http.Request) (*httpx.Response, error) {
	from, err := timeQuery(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := timeQuery(r, "to")
	if err != nil {
		return nil, err
	}
	events, aerr := portalmanager.ListCalendarEvents(r.Context(), from, to)
	if aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: events}, nil
}

func timeQuery(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, httpx.ErrInvalidRequest("invalid " + name + " timestamp")
}
