package domain

import "time"

// ScopeKind selects the temporal filter applied before aggregation.
type ScopeKind int

const (
	AllTime ScopeKind = iota
	BySeason
	ByMonth
)

// String returns a short label for the scope kind, used in metric labels
// and query parameters.
func (k ScopeKind) String() string {
	switch k {
	case BySeason:
		return "season"
	case ByMonth:
		return "month"
	default:
		return "all"
	}
}

// Scope is a user-selected time filter. Season is set for BySeason,
// Month for ByMonth; both are ignored otherwise.
type Scope struct {
	Kind   ScopeKind
	Season Season
	Month  time.Month
}

// Matches reports whether an observation falls inside the scope.
func (s Scope) Matches(o Observation) bool {
	switch s.Kind {
	case BySeason:
		return o.Season == s.Season
	case ByMonth:
		return o.Month == s.Month
	default:
		return true
	}
}

// Description is the human-readable label the presentation layer shows
// above the map, e.g. "Average for Winter".
func (s Scope) Description() string {
	switch s.Kind {
	case BySeason:
		return "Average for " + string(s.Season)
	case ByMonth:
		return "Average for " + s.Month.String()
	default:
		return "All Time Average"
	}
}

// FilterScope returns the observations matching the scope as a fresh slice.
// The input is never mutated, and an empty result is valid data.
func FilterScope(records []Observation, s Scope) []Observation {
	if s.Kind == AllTime {
		out := make([]Observation, len(records))
		copy(out, records)
		return out
	}
	out := make([]Observation, 0, len(records))
	for _, o := range records {
		if s.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}
