package eta

import "time"

// Calendar holds the business-day rules used when estimating delivery
// dates. Holidays are keyed by "2006-01-02" in the calendar's notion of
// local time.
type Calendar struct {
	CutoffHour   int
	SkipWeekends bool
	Holidays     map[string]bool
}

// Estimate is the promised delivery date in both machine and display form.
type Estimate struct {
	Date    time.Time `json:"-"`
	ISO     string    `json:"iso"`
	Display string    `json:"display"`
}

func (cal Calendar) isBusinessDay(t time.Time) bool {
	if cal.SkipWeekends {
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return false
		}
	}
	return !cal.Holidays[t.Format("2006-01-02")]
}

func (cal Calendar) nextBusinessDay(t time.Time) time.Time {
	t = t.AddDate(0, 0, 1)
	for !cal.isBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// Estimate adds slaDays business days to now. Orders placed after the
// cutoff hour start counting from the next business day; earlier orders
// count from today (moved forward first if today is not a business day).
func (cal Calendar) Estimate(now time.Time, slaDays int) Estimate {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Hour() >= cal.CutoffHour {
		start = cal.nextBusinessDay(start)
	} else {
		for !cal.isBusinessDay(start) {
			start = start.AddDate(0, 0, 1)
		}
	}

	date := start
	for i := 0; i < slaDays; i++ {
		date = cal.nextBusinessDay(date)
	}

	return Estimate{
		Date:    date,
		ISO:     date.Format(time.RFC3339),
		Display: date.Format("Mon, 2 Jan"),
	}
}
