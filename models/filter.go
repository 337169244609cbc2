package models

// AllValues is the sentinel selection meaning "no restriction".
const AllValues = "all"

type DayType string

const (
	DayAll     DayType = "all"
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
)

// DateRange is inclusive; an empty bound is unbounded.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterState is the user-selected filter configuration. The zero value
// filters nothing; HideAYCE is false so AYCE orders are shown by default.
type FilterState struct {
	DateRange  DateRange `json:"dateRange"`
	DayType    DayType   `json:"dayType"`
	Kitchens   []string  `json:"kitchens"`
	Categories []string  `json:"categories"`
	HideAYCE   bool      `json:"hideAyce"`
	ItemTypes  []string  `json:"itemTypes"`
	MinMains   int       `json:"minMains"`
}

// DefaultFilter returns the initial dashboard selection.
func DefaultFilter() FilterState {
	return FilterState{
		DayType:    DayAll,
		Kitchens:   []string{AllValues},
		Categories: []string{AllValues},
		ItemTypes:  []string{AllValues},
		MinMains:   1,
	}
}

// SelectsAll reports whether a set selection is unrestricted: empty or
// containing the "all" sentinel.
func SelectsAll(sel []string) bool {
	if len(sel) == 0 {
		return true
	}
	for _, s := range sel {
		if s == AllValues {
			return true
		}
	}
	return false
}

// Toggle applies the dashboard's chip semantics: choosing "all" resets,
// choosing a value flips it, and an empty result falls back to "all".
func Toggle(sel []string, value string) []string {
	if value == AllValues {
		return []string{AllValues}
	}
	next := make([]string, 0, len(sel)+1)
	found := false
	for _, s := range sel {
		if s == AllValues {
			continue
		}
		if s == value {
			found = true
			continue
		}
		next = append(next, s)
	}
	if !found {
		next = append(next, value)
	}
	if len(next) == 0 {
		return []string{AllValues}
	}
	return next
}
