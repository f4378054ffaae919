package cli

import (
	"fmt"
	"time"
)

// maxRangeDays bounds export ranges; each day costs up to three API calls.
const maxRangeDays = 366

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// dateRange expands an inclusive from..to range into day strings.
func dateRange(from, to string) ([]string, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s is before start %s", to, from)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxRangeDays {
		return nil, fmt.Errorf("range spans %d days, maximum is %d", days, maxRangeDays)
	}

	dates := make([]string, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

// defaultDate fills an empty date flag with today in the app timezone.
func (app *App) defaultDate(s string) string {
	if s != "" {
		return s
	}
	return time.Now().In(app.loc()).Format(dateLayout)
}
