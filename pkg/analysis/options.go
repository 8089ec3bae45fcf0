package analysis

// SortField orders the ByRule and ByFile views.
type SortField string

const (
	SortByCount    SortField = "count"    // violation count, honoring SortDesc
	SortByAlpha    SortField = "alpha"    // rule ID or path
	SortBySeverity SortField = "severity" // most errors first
)

// SortFields returns every valid sort field.
func SortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// IsValid reports whether s is one of SortFields.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	}
	return false
}

// Options selects the views Analyze computes. Totals are always computed.
type Options struct {
	IncludeViolations bool
	IncludeByFile     bool
	IncludeByRule     bool

	SortBy   SortField
	SortDesc bool

	// WorkingDir makes report paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions computes every view, largest groups first.
func DefaultOptions() Options {
	return Options{
		IncludeViolations: true,
		IncludeByFile:     true,
		IncludeByRule:     true,
		SortBy:            SortByCount,
		SortDesc:          true,
	}
}
