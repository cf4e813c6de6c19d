package payments

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/casahub/casahub-internal/internal/common/apperrors"
	"github.com/casahub/casahub-internal/internal/portalsrv/db"
	"github.com/casahub/casahub-internal/internal/portalsrv/db/models"
)

// selectCandidate picks the invoice a payment unambiguously settles. The
// amount filter has already been applied; sender email narrows further when
// more than one invoice carries the amount. A single survivor wins; anything
// else goes to manual review.
func selectCandidate(candidates []*models.InvoiceCandidate, senderEmail string) *models.InvoiceCandidate {
	if len(candidates) == 1 {
		return candidates[0]
	}
	if len(candidates) == 0 || senderEmail == "" {
		return nil
	}
	var match *models.InvoiceCandidate
	for _, c := range candidates {
		if strings.EqualFold(c.TenantEmail, senderEmail) {
			if match != nil {
				return nil // two invoices for the same sender and amount
			}
			match = c
		}
	}
	return match
}

// ProcessIntake records an inbound payment and attempts to match it to a
// pending invoice. Returns the stored intake record in its final state.
func ProcessIntake(ctx context.Context, payload *IntakePayload) (*models.PaymentIntake, apperrors.Error) {
	intake := &models.PaymentIntake{
		Reference:   payload.Reference,
		SenderName:  payload.SenderName,
		SenderEmail: payload.SenderEmail,
		Amount:      payload.Amount,
		ReceivedAt:  payload.ReceivedAt,
	}
	if err := intake.Raw.Set(payload.Raw); err != nil {
		return nil, ErrInvalidPayload.Msg("unable to store raw payload")
	}

	if err := db.DB(ctx).CreatePaymentIntake(ctx, intake); err != nil {
		if err.StatusCode() == http.StatusConflict {
			// duplicate webhook delivery; return the existing record
			log.Ctx(ctx).Info().Str("reference", payload.Reference).Msg("duplicate payment notification")
			return findIntakeByReference(ctx, payload.Reference)
		}
		return nil, err
	}

	candidates, err := db.DB(ctx).ListPendingInvoicesByAmount(ctx, payload.Amount)
	if err != nil {
		return nil, err
	}
	candidate := selectCandidate(candidates, payload.SenderEmail)
	if candidate == nil {
		log.Ctx(ctx).Info().
			Str("reference", payload.Reference).
			Int("candidates", len(candidates)).
			Msg("payment intake needs manual review")
		return intake, nil
	}

	if err := db.DB(ctx).MatchPaymentIntake(ctx, intake.IntakeID, candidate.InvoiceID, "auto-matched"); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("reference", payload.Reference).Msg("auto-match failed, leaving in review")
		return intake, nil
	}
	log.Ctx(ctx).Info().
		Str("reference", payload.Reference).
		Str("invoice_number", candidate.Number).
		Msg("payment auto-matched to invoice")

	return db.DB(ctx).GetPaymentIntake(ctx, intake.IntakeID)
}

func findIntakeByReference(ctx context.Context, reference string) (*models.PaymentIntake, apperrors.Error) {
	intakes, err := db.DB(ctx).ListPaymentIntake(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, intake := range intakes {
		if intake.Reference == reference {
			return intake, nil
		}
	}
	return nil, ErrPayment.New("intake not found").SetStatusCode(http.StatusNotFound)
}

// ResolveIntake manually matches a needs_review intake to an invoice.
func ResolveIntake(ctx context.Context, intakeID, invoiceID uuid.UUID, note string) (*models.PaymentIntake, apperrors.Error) {
	if note == "" {
		note = "manually matched"
	}
	if err := db.DB(ctx).MatchPaymentIntake(ctx, intakeID, invoiceID, note); err != nil {
		switch err.StatusCode() {
		case http.StatusConflict:
			return nil, ErrIntakeResolved
		case http.StatusBadRequest:
			return nil, ErrInvoiceSettled
		}
		return nil, err
	}
	return db.DB(ctx).GetPaymentIntake(ctx, intakeID)
}

// DismissIntake closes a needs_review intake without matching it.
func DismissIntake(ctx context.Context, intakeID uuid.UUID, note string) (*models.PaymentIntake, apperrors.Error) {
	if note == "" {
		note = "dismissed"
	}
	if err := db.DB(ctx).DismissPaymentIntake(ctx, intakeID, note); err != nil {
		if err.StatusCode() == http.StatusConflict {
			return nil, ErrIntakeResolved
		}
		return nil, err
	}
	return db.DB(ctx).GetPaymentIntake(ctx, intakeID)
}
