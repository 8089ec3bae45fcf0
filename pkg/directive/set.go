package directive

import (
	"github.com/yaklabco/stylint/pkg/source"
)

// Set answers suppression queries for one file.
//
// A Set records which directives suppressed something so that unused ones can
// be reported. It is not safe for concurrent use.
type Set struct {
	file       *source.File
	directives []Directive
	used       []bool
}

// NewSet creates a Set for directives parsed from file, in document order.
func NewSet(file *source.File, directives []Directive) *Set {
	return &Set{
		file:       file,
		directives: directives,
		used:       make([]bool, len(directives)),
	}
}

// Directives returns the parsed directives.
func (s *Set) Directives() []Directive {
	return s.directives
}

// IsDisabled reports whether a violation of ruleID at offset is suppressed.
//
// Line-scoped directives covering the violation's line win over ranges; when
// several cover it, the last in the file decides, so an enable:next inside a
// disabled range re-enables one line. Otherwise the most recent range
// directive targeting ruleID (or all) that starts at or before offset
// decides.
func (s *Set) IsDisabled(ruleID string, offset int) bool {
	if len(s.directives) == 0 {
		return false
	}

	line := s.file.Location(offset).Line
	covering := -1
	for i, d := range s.directives {
		if d.Scope != ScopeRange && d.Targets(ruleID) && d.AppliesToLine(line) {
			covering = i
		}
	}
	if covering >= 0 {
		if s.directives[covering].Action == Enable {
			return false
		}
		s.used[covering] = true
		return true
	}

	latest := -1
	for i, d := range s.directives {
		if d.Range.Offset > offset {
			break
		}
		if d.Scope == ScopeRange && d.Targets(ruleID) {
			latest = i
		}
	}
	if latest < 0 || s.directives[latest].Action != Disable {
		return false
	}
	s.used[latest] = true
	return true
}

// Unused returns the disable directives that have not suppressed anything.
func (s *Set) Unused() []Directive {
	var out []Directive
	for i, d := range s.directives {
		if d.Action == Disable && !s.used[i] {
			out = append(out, d)
		}
	}
	return out
}
