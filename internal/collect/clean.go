package collect

import (
	"github.com/leadforge/leadscout/internal/model"
)

// Clean drops leads with unusable phone numbers and removes duplicates.
// Duplicates are detected by phone and then by email; the first
// occurrence wins. Input order is otherwise preserved.
func Clean(leads []model.Lead) []model.Lead {
	seenPhone := make(map[string]bool)
	seenEmail := make(map[string]bool)

	out := make([]model.Lead, 0, len(leads))
	for _, lead := range leads {
		if !usablePhone(lead.Phone) {
			continue
		}
		if lead.Phone != "" {
			if seenPhone[lead.Phone] {
				continue
			}
			seenPhone[lead.Phone] = true
		}
		if lead.Email != "" {
			if seenEmail[lead.Email] {
				continue
			}
			seenEmail[lead.Email] = true
		}
		out = append(out, lead)
	}
	return out
}

// usablePhone requires at least 10 digits once non-digits are removed.
// This is stricter than scoring's phone validation on purpose: it gates
// what enters the store, not how an existing lead is judged.
func usablePhone(phone string) bool {
	var digits int
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}
