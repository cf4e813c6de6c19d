package portalmanager

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
	"github.com/casahub/casahub-internal/internal/portalsrv/schema"
)

func TestUnitSchemaValidate(t *testing.T) {
	valid := `{"name": "Unit 101", "address": "12 Main St", "bedrooms": 2, "rent_amount": "1850.00"}`
	us := &unitSchema{}
	require.NoError(t, json.Unmarshal([]byte(valid), us))
	assert.Nil(t, us.Validate())
	assert.True(t, us.RentAmount.Equal(decimal.RequireFromString("1850.00")))

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"address": "12 Main St", "rent_amount": "1850.00"}`},
		{"missing address", `{"name": "Unit 101", "rent_amount": "1850.00"}`},
		{"negative rent", `{"name": "Unit 101", "address": "12 Main St", "rent_amount": "-50"}`},
		{"too many bedrooms", `{"name": "Unit 101", "address": "12 Main St", "bedrooms": 99, "rent_amount": "1850.00"}`},
	}
	for _, test := range tests {
		us := &unitSchema{}
		require.NoError(t, json.Unmarshal([]byte(test.body), us), test.name)
		assert.NotNil(t, us.Validate(), test.name)
	}
}

func TestTenancySchemaValidate(t *testing.T) {
	valid := `{
		"unit_id": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		"user_id": "9b2f3c64-1a5e-4ad0-8f3f-0d6a1d2b3c4d",
		"starts_on": "2026-09-01",
		"rent_amount": "1850.00",
		"rent_due_day": 1
	}`
	ts := &tenancySchema{}
	require.NoError(t, json.Unmarshal([]byte(valid), ts))
	assert.Nil(t, ts.Validate())

	ts.RentDueDay = 31
	ves := ts.Validate()
	require.NotNil(t, ves)
	assert.Contains(t, ves.Error(), "rent_due_day")

	ts.RentDueDay = 15
	ts.StartsOn = "September 1st"
	assert.NotNil(t, ts.Validate())
}

func TestSeedChecklistItems(t *testing.T) {
	items := seedChecklistItems()
	require.NotEmpty(t, items)

	positions := map[string]int{}
	for _, item := range items {
		positions[item.Phase]++
		assert.Equal(t, positions[item.Phase], item.Position)
		assert.False(t, item.Completed)
		assert.NotEmpty(t, item.Label)
	}
	assert.Greater(t, positions[models.ChecklistPhaseMoveIn], 0)
	assert.Greater(t, positions[models.ChecklistPhaseMoveOut], 0)
}

func TestServiceRequestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.RequestStatusOpen, models.RequestStatusInProgress, true},
		{models.RequestStatusOpen, models.RequestStatusResolved, true},
		{models.RequestStatusOpen, models.RequestStatusCancelled, true},
		{models.RequestStatusInProgress, models.RequestStatusResolved, true},
		{models.RequestStatusInProgress, models.RequestStatusOpen, false},
		{models.RequestStatusResolved, models.RequestStatusOpen, false},
		{models.RequestStatusResolved, models.RequestStatusInProgress, false},
		{models.RequestStatusCancelled, models.RequestStatusResolved, false},
		{models.RequestStatusOpen, models.RequestStatusOpen, true},
	}
	for _, test := range tests {
		got := statusChangeAllowed(test.from, test.to)
		assert.Equal(t, test.allowed, got, "%s -> %s", test.from, test.to)
	}
}

func TestServiceRequestSchemaValidate(t *testing.T) {
	valid := `{"title": "Leaking faucet", "description": "Kitchen sink drips", "priority": "normal"}`
	srs := &serviceRequestSchema{}
	require.NoError(t, json.Unmarshal([]byte(valid), srs))
	assert.Nil(t, schema.ValidateStruct(srs))

	bad := `{"title": "Leaking faucet", "description": "Kitchen sink drips", "priority": "asap"}`
	srs = &serviceRequestSchema{}
	require.NoError(t, json.Unmarshal([]byte(bad), srs))
	ves := schema.ValidateStruct(srs)
	require.NotNil(t, ves)
	assert.Contains(t, ves.Error(), "priority")
}

func TestCalendarEventSchemaValidate(t *testing.T) {
	cs := &calendarEventSchema{
		Title:    "Annual inspection",
		StartsAt: time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC),
	}
	assert.Nil(t, cs.Validate())

	cs.EndsAt = cs.StartsAt.Add(-time.Hour)
	ves := cs.Validate()
	require.NotNil(t, ves)
	assert.Contains(t, ves.Error(), "ends_at")

	cs.EndsAt = cs.StartsAt.Add(time.Hour)
	cs.Attendees = []string{"not-an-email"}
	assert.NotNil(t, cs.Validate())
}

func TestInsuranceReviewSchemaValidate(t *testing.T) {
	rs := &insuranceReviewSchema{Decision: "approved"}
	assert.Nil(t, schema.ValidateStruct(rs))

	rs.Decision = "maybe"
	assert.NotNil(t, schema.ValidateStruct(rs))
}
