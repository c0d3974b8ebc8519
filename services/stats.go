package services

import (
	"fmt"
	"time"

	"github.com/restsoft-app/restsoft-pos/models"
)

// Reporting periods.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Labels stay in Spanish, matching what the charts always showed.
var diasSemana = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var mesesCorto = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// StatBucket is one bar of the chart, with the total broken down by
// origin so the stacked view needs no second pass.
type StatBucket struct {
	Label    string  `json:"label"`
	Orders   int     `json:"orders"`
	Total    float64 `json:"total"`
	Salon    float64 `json:"salon"`
	Delivery float64 `json:"delivery"`
	Counter  float64 `json:"mostrador"`
}

type StatsReport struct {
	Period     string       `json:"period"`
	Origin     string       `json:"origin,omitempty"`
	Buckets    []StatBucket `json:"buckets"`
	OrderCount int          `json:"order_count"`
	GrandTotal float64      `json:"grand_total"`
}

// Aggregate buckets the order history for one chart: hourly over the
// last 24 hours, daily over the last week or month, monthly over the
// last year. A non-empty origin restricts to that channel. Orders
// outside the window are skipped, never an error.
func Aggregate(orders []models.Order, period, origin string, now time.Time) (*StatsReport, error) {
	switch origin {
	case "", models.OriginSalon, models.OriginDelivery, models.OriginCounter:
	default:
		return nil, fmt.Errorf("unknown origin %q: %w", origin, ErrValidation)
	}

	var (
		buckets []StatBucket
		index   func(t time.Time) int
	)

	switch period {
	case PeriodDay:
		start := now.Truncate(time.Hour).Add(-23 * time.Hour)
		buckets = make([]StatBucket, 24)
		for i := range buckets {
			buckets[i].Label = start.Add(time.Duration(i) * time.Hour).Format("15:00")
		}
		index = func(t time.Time) int {
			if t.Before(start) || t.After(now) {
				return -1
			}
			return int(t.Sub(start) / time.Hour)
		}
	case PeriodWeek:
		start := dateOf(now).AddDate(0, 0, -6)
		buckets = make([]StatBucket, 7)
		for i := range buckets {
			d := start.AddDate(0, 0, i)
			buckets[i].Label = diasSemana[int(d.Weekday())]
		}
		index = dayIndex(start, 7)
	case PeriodMonth:
		start := dateOf(now).AddDate(0, 0, -29)
		buckets = make([]StatBucket, 30)
		for i := range buckets {
			d := start.AddDate(0, 0, i)
			buckets[i].Label = fmt.Sprintf("%d/%d", d.Day(), int(d.Month()))
		}
		index = dayIndex(start, 30)
	case PeriodYear:
		buckets = make([]StatBucket, 12)
		startYear, startMonth := now.AddDate(0, -11, 0).Year(), now.AddDate(0, -11, 0).Month()
		for i := range buckets {
			m := (int(startMonth) - 1 + i) % 12
			buckets[i].Label = mesesCorto[m]
		}
		startOrd := startYear*12 + int(startMonth) - 1
		index = func(t time.Time) int {
			i := t.Year()*12 + int(t.Month()) - 1 - startOrd
			if i < 0 || i > 11 || t.After(now) {
				return -1
			}
			return i
		}
	default:
		return nil, fmt.Errorf("unknown period %q: %w", period, ErrValidation)
	}

	report := &StatsReport{Period: period, Origin: origin}
	for _, o := range orders {
		if origin != "" && o.Origin != origin {
			continue
		}
		i := index(o.PlacedAt)
		if i < 0 || i >= len(buckets) {
			continue
		}
		b := &buckets[i]
		b.Orders++
		b.Total += o.Total
		switch o.Origin {
		case models.OriginSalon:
			b.Salon += o.Total
		case models.OriginDelivery:
			b.Delivery += o.Total
		case models.OriginCounter:
			b.Counter += o.Total
		}
		report.OrderCount++
		report.GrandTotal += o.Total
	}
	report.Buckets = buckets
	return report, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayIndex(start time.Time, n int) func(time.Time) int {
	return func(t time.Time) int {
		i := int(dateOf(t).Sub(start) / (24 * time.Hour))
		if i < 0 || i >= n {
			return -1
		}
		return i
	}
}
