package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dinein-dashboard/analytics"
	"dinein-dashboard/models"
	"dinein-dashboard/services"
)

const presetAll = "all"

// applyPreset sets the date range from a named preset clamped to the dates
// of the series f would show. "all" clears the range.
func applyPreset(f *models.FilterState, name string, p *analytics.Prepared, now time.Time) error {
	if name == presetAll {
		f.DateRange = models.DateRange{}
		return nil
	}
	r, ok := analytics.DatePreset(name, now)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	first, last := analytics.DateExtent(p, *f)
	f.DateRange = analytics.ClampRange(r, first, last)
	return nil
}

// parseDate accepts YYYY-MM-DD or an empty value, which leaves the bound open.
func parseDate(key, v string) (string, error) {
	if v != "" && !analytics.ValidDate(v) {
		return "", fmt.Errorf("%s must be YYYY-MM-DD, got %q", key, v)
	}
	return v, nil
}

func parseDayType(v string) (models.DayType, error) {
	switch dt := models.DayType(strings.ToLower(v)); dt {
	case models.DayAll, models.DayWeekday, models.DayWeekend:
		return dt, nil
	}
	return "", fmt.Errorf("day must be all, weekday or weekend")
}

func parseMains(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || (n != 1 && n != 2) {
		return 0, fmt.Errorf("mains must be 1 or 2")
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{models.AllValues}
	}
	return out
}

// applyFilterArgs applies "/filter key=value ..." arguments. Keys: day,
// from, to, preset, kitchen, category, type, ayce (show|hide), mains.
// List values are comma separated; underscores stand for spaces so kitchen
// names survive the whitespace split. A preset is resolved last, against the
// exclusions the other arguments set.
func applyFilterArgs(f *models.FilterState, args []string, p *analytics.Prepared, now time.Time) error {
	preset := ""
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		val = strings.ReplaceAll(val, "_", " ")
		switch key = strings.ToLower(key); key {
		case "day":
			dt, err := parseDayType(val)
			if err != nil {
				return err
			}
			f.DayType = dt
		case "from", "to":
			d, err := parseDate(key, val)
			if err != nil {
				return err
			}
			if key == "from" {
				f.DateRange.Start = d
			} else {
				f.DateRange.End = d
			}
		case "preset":
			preset = val
		case "kitchen":
			f.Kitchens = splitList(val)
		case "category":
			f.Categories = splitList(val)
		case "type":
			f.ItemTypes = splitList(strings.ReplaceAll(val, " ", "_"))
		case "ayce":
			switch val {
			case "hide":
				f.HideAYCE = true
			case "show":
				f.HideAYCE = false
			default:
				return fmt.Errorf("ayce must be show or hide")
			}
		case "mains":
			n, err := parseMains(val)
			if err != nil {
				return err
			}
			f.MinMains = n
		default:
			return fmt.Errorf("unknown filter %q", key)
		}
	}
	if preset != "" {
		return applyPreset(f, preset, p, now)
	}
	return nil
}

// applyCallback applies a report card button to the filter. It reports
// false for buttons that do not change the filter.
func applyCallback(f *models.FilterState, data string, p *analytics.Prepared, now time.Time) (bool, error) {
	switch {
	case strings.HasPrefix(data, services.CallbackDay):
		dt, err := parseDayType(strings.TrimPrefix(data, services.CallbackDay))
		if err != nil {
			return false, err
		}
		f.DayType = dt
	case strings.HasPrefix(data, services.CallbackAYCE):
		f.HideAYCE = strings.TrimPrefix(data, services.CallbackAYCE) == "hide"
	case strings.HasPrefix(data, services.CallbackMains):
		n, err := parseMains(strings.TrimPrefix(data, services.CallbackMains))
		if err != nil {
			return false, err
		}
		f.MinMains = n
	case strings.HasPrefix(data, services.CallbackPreset):
		if err := applyPreset(f, strings.TrimPrefix(data, services.CallbackPreset), p, now); err != nil {
			return false, err
		}
	default:
		return false, nil
	}
	return true, nil
}
