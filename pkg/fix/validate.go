package fix

import (
	"fmt"
	"slices"
)

// ValidationError describes an invalid replacement.
type ValidationError struct {
	Replacement Replacement
	Message     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid replacement [%d:%d]: %s",
		e.Replacement.StartOffset, e.Replacement.EndOffset, e.Message)
}

// ConflictError describes overlapping replacements.
type ConflictError struct {
	First  Replacement
	Second Replacement
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping replacements: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// Validate checks that all replacements have valid ranges for the given
// content length. Returns the first validation error encountered.
func Validate(reps []Replacement, contentLen int) error {
	for _, rep := range reps {
		if rep.StartOffset < 0 {
			return &ValidationError{Replacement: rep, Message: "start offset is negative"}
		}
		if rep.EndOffset < rep.StartOffset {
			return &ValidationError{Replacement: rep, Message: "end offset is before start offset"}
		}
		if rep.EndOffset > contentLen {
			return &ValidationError{
				Replacement: rep,
				Message:     fmt.Sprintf("end offset %d exceeds content length %d", rep.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// compareDescending orders by start offset, highest first, then by end
// offset and text so the order is total.
func compareDescending(a, b Replacement) int {
	if a.StartOffset != b.StartOffset {
		return b.StartOffset - a.StartOffset
	}
	if a.EndOffset != b.EndOffset {
		return b.EndOffset - a.EndOffset
	}
	switch {
	case a.NewText < b.NewText:
		return -1
	case a.NewText > b.NewText:
		return 1
	default:
		return 0
	}
}

// SortDescending sorts replacements by descending start offset.
func SortDescending(reps []Replacement) {
	slices.SortFunc(reps, compareDescending)
}

// DetectConflicts checks a descending-sorted slice for replacements that
// overlap or that start at the same offset. Returns the first conflict found.
func DetectConflicts(reps []Replacement) error {
	for i := 1; i < len(reps); i++ {
		later := reps[i-1]
		curr := reps[i]
		if curr.EndOffset > later.StartOffset || curr.StartOffset == later.StartOffset {
			return &ConflictError{First: curr, Second: later}
		}
	}
	return nil
}

// Prepare validates, deduplicates, sorts descending, and checks for
// conflicts. The input slice is not modified.
func Prepare(reps []Replacement, contentLen int) ([]Replacement, error) {
	if len(reps) == 0 {
		return nil, nil
	}

	if err := Validate(reps, contentLen); err != nil {
		return nil, err
	}

	result := slices.Clone(reps)
	SortDescending(result)
	result = slices.Compact(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}
