package service

import (
	"fmt"
	"time"

	"github.com/PsySom/ready-set-prompt/internal/models"
)

// periodDays maps the API period names onto window lengths in days.
var periodDays = map[string]int{
	"week":    7,
	"month":   30,
	"3months": 90,
	"year":    365,
}

// periodWindow resolves a period name into an inclusive date window ending
// today. An empty period defaults to a month.
func periodWindow(period string, now time.Time) (from, to models.Date, err error) {
	if period == "" {
		period = "month"
	}
	days, ok := periodDays[period]
	if !ok {
		return models.Date{}, models.Date{}, fmt.Errorf("unknown period %q", period)
	}
	to = models.DateOf(now)
	from = to.AddDays(-(days - 1))
	return from, to, nil
}
