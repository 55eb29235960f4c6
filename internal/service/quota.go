package service

import (
	"fmt"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
)

// QuotaError is a client-visible validation failure. The message is shown to
// the member as-is, so the wording is part of the contract.
type QuotaError struct {
	msg string
}

func (e *QuotaError) Error() string { return e.msg }

// ErrNoDepartmentsSelected rejects an empty proposal.
var ErrNoDepartmentsSelected = &QuotaError{msg: "Please select at least one department"}

// ValidateProposal checks a proposed selection set against the global cap
// and each category's max_selections. proposedIDs is the raw submitted list
// (the global cap counts what the member typed); departments are the
// resolved rows with Category preloaded. Uncategorized departments are
// exempt from category capping. The validator looks only at the proposal,
// never at the member's existing selections: submission and whole-set update
// both validate the new set from scratch.
func ValidateProposal(proposedIDs []uint, departments []model.Department, globalMax int) *QuotaError {
	if len(proposedIDs) == 0 {
		return ErrNoDepartmentsSelected
	}
	if len(proposedIDs) > globalMax {
		return &QuotaError{msg: fmt.Sprintf("You can only select up to %d departments", globalMax)}
	}

	// partition by category
	type bucket struct {
		name       string
		maxAllowed int
		count      int
	}
	byCategory := make(map[uint]*bucket)
	for i := range departments {
		dept := &departments[i]
		if dept.CategoryID == nil {
			continue
		}
		b, ok := byCategory[*dept.CategoryID]
		if !ok {
			// missing category row cannot happen under referential integrity;
			// fall back to a cap of 1
			b = &bucket{name: "unknown", maxAllowed: 1}
			if dept.Category != nil {
				b.name = dept.Category.Name
				b.maxAllowed = dept.Category.MaxSelections
			}
			byCategory[*dept.CategoryID] = b
		}
		b.count++
	}

	for _, b := range byCategory {
		if b.count > b.maxAllowed {
			return &QuotaError{msg: fmt.Sprintf("You can only select up to %d department(s) from '%s'", b.maxAllowed, b.name)}
		}
	}

	return nil
}
