package payments

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
)

func candidate(email string) *models.InvoiceCandidate {
	c := &models.InvoiceCandidate{TenantEmail: email}
	c.InvoiceID = uuid.New()
	return c
}

func TestSelectCandidateSingleMatch(t *testing.T) {
	only := candidate("jordan@example.com")
	got := selectCandidate([]*models.InvoiceCandidate{only}, "someone-else@example.com")
	assert.Same(t, only, got, "a single candidate wins regardless of sender")
}

func TestSelectCandidateNone(t *testing.T) {
	assert.Nil(t, selectCandidate(nil, "jordan@example.com"))
	assert.Nil(t, selectCandidate([]*models.InvoiceCandidate{}, ""))
}

func TestSelectCandidateNarrowsBySender(t *testing.T) {
	a := candidate("alex@example.com")
	b := candidate("jordan@example.com")

	got := selectCandidate([]*models.InvoiceCandidate{a, b}, "jordan@example.com")
	assert.Same(t, b, got)

	// case-insensitive sender match
	got = selectCandidate([]*models.InvoiceCandidate{a, b}, "Jordan@Example.COM")
	assert.Same(t, b, got)
}

func TestSelectCandidateAmbiguous(t *testing.T) {
	a := candidate("alex@example.com")
	b := candidate("jordan@example.com")

	// several candidates, no sender to narrow by
	assert.Nil(t, selectCandidate([]*models.InvoiceCandidate{a, b}, ""))

	// sender matches none of the candidates
	assert.Nil(t, selectCandidate([]*models.InvoiceCandidate{a, b}, "stranger@example.com"))

	// sender has two invoices for the same amount
	c := candidate("jordan@example.com")
	assert.Nil(t, selectCandidate([]*models.InvoiceCandidate{b, c}, "jordan@example.com"))
}
