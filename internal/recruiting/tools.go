package recruiting

import (
	"fmt"
	"math/rand/v2"
	"time"

	"recruitflow/internal/types"
)

// Simulated external integrations. There is no real Zoom or SMTP
// backend; slots and delivery receipts are generated locally with the
// same shape a real integration would produce.

// callTimeLayout is the wire format for scheduled call times,
// e.g. "2026-08-24 14:00 IST" once the timezone label is appended.
const callTimeLayout = "2006-01-02 15:04"

// simulateScheduling books a pseudo-random interview slot 1-7 days out,
// on the hour between 10:00 and 17:00, with a 9-digit meeting id.
func simulateScheduling(candidate types.ScreeningResult, now time.Time, tzLabel string) types.ScheduledCall {
	base := now.AddDate(0, 0, 1+rand.IntN(7))
	hour := 10 + rand.IntN(8)
	slot := time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, base.Location())

	meetingID := 100000000 + rand.IntN(900000000)

	return types.ScheduledCall{
		Name:     candidate.Name,
		Email:    candidate.Email,
		CallTime: slot.Format(callTimeLayout) + " " + tzLabel,
		URL:      fmt.Sprintf("https://zoom.us/j/%d", meetingID),
	}
}

// simulateDelivery produces a delivery acknowledgment for an email
func simulateDelivery(input types.SendEmailInput, now time.Time) types.SendReceipt {
	return types.SendReceipt{
		To:      input.To,
		Subject: input.Subject,
		Confirmation: fmt.Sprintf("Email sent successfully to %s at %s",
			input.To, now.Format(time.RFC3339)),
	}
}
