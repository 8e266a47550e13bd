package recruiting

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"recruitflow/internal/types"
)

func TestSimulateScheduling(t *testing.T) {
	candidate := types.ScreeningResult{
		Name:  "Jane Smith",
		Email: "jane@corp.io",
	}
	now := time.Date(2026, 8, 23, 9, 30, 0, 0, time.UTC)
	urlRe := regexp.MustCompile(`^https://zoom\.us/j/\d{9}$`)

	// The slot is pseudo-random, so check the documented bounds over
	// many draws instead of a single value.
	for range 200 {
		call := simulateScheduling(candidate, now, "IST")

		if call.Name != candidate.Name || call.Email != candidate.Email {
			t.Fatalf("Expected candidate identity carried over, got %+v", call)
		}
		if !urlRe.MatchString(call.URL) {
			t.Fatalf("Expected 9-digit zoom URL, got '%s'", call.URL)
		}
		if !strings.HasSuffix(call.CallTime, " IST") {
			t.Fatalf("Expected timezone label suffix, got '%s'", call.CallTime)
		}

		slot, err := time.Parse(callTimeLayout, strings.TrimSuffix(call.CallTime, " IST"))
		if err != nil {
			t.Fatalf("Expected parseable call time, got '%s': %v", call.CallTime, err)
		}
		daysOut := slot.Truncate(24 * time.Hour).Sub(now.Truncate(24*time.Hour)) / (24 * time.Hour)
		if daysOut < 1 || daysOut > 7 {
			t.Fatalf("Expected slot 1-7 days out, got %d days (%s)", daysOut, call.CallTime)
		}
		if slot.Hour() < 10 || slot.Hour() > 17 {
			t.Fatalf("Expected slot hour between 10 and 17, got %d", slot.Hour())
		}
		if slot.Minute() != 0 {
			t.Fatalf("Expected slot on the hour, got minute %d", slot.Minute())
		}
	}
}

func TestSimulateDelivery(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	input := types.SendEmailInput{
		To:      "jane@corp.io",
		Subject: "Interview Invitation",
		Body:    "See you soon.",
	}

	receipt := simulateDelivery(input, now)

	if receipt.To != input.To {
		t.Errorf("Expected recipient '%s', got '%s'", input.To, receipt.To)
	}
	if receipt.Subject != input.Subject {
		t.Errorf("Expected subject '%s', got '%s'", input.Subject, receipt.Subject)
	}
	if !strings.Contains(receipt.Confirmation, input.To) {
		t.Errorf("Expected confirmation to mention recipient, got '%s'", receipt.Confirmation)
	}
	if !strings.Contains(receipt.Confirmation, now.Format(time.RFC3339)) {
		t.Errorf("Expected confirmation to carry the send time, got '%s'", receipt.Confirmation)
	}
}
