package analytics

import (
	"strings"
	"time"

	"go-restaurant-analytics/models"
)

// Sentinel meaning "no constraint" for the exact-match filter fields.
const FilterAll = "all"

// Date range modes accepted by Filter.Date_range.
const (
	RangeAll       = "all"
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeWeek      = "week"
	RangeLastWeek  = "last_week"
	RangeMonth     = "month"
	RangeThisMonth = "this_month"
	RangeLastMonth = "last_month"
	RangeQuarter   = "quarter"
	RangeCustom    = "custom"
)

// Filter narrows an order snapshot. Empty or "all" fields impose no
// constraint. Start_date/End_date are only consulted in custom mode and are
// "2006-01-02" strings; a bound that fails to parse leaves that side open.
type Filter struct {
	Date_range   string `json:"date_range"`
	Start_date   string `json:"start_date"`
	End_date     string `json:"end_date"`
	Table_id     string `json:"table_id"`
	Status       string `json:"status"`
	Order_type   string `json:"order_type"`
	Menu_item_id string `json:"menu_item_id"`
	Search       string `json:"search"`
}

const dateLayout = "2006-01-02"

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// resolveDateRange turns a range mode into [start, end) bounds. A zero bound
// means unbounded on that side. now anchors the rolling windows.
func resolveDateRange(mode, startStr, endStr string, now time.Time) (time.Time, time.Time) {
	today := startOfDay(now)
	switch mode {
	case RangeToday:
		return today, today.AddDate(0, 0, 1)
	case RangeYesterday:
		return today.AddDate(0, 0, -1), today
	case RangeWeek:
		return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1)
	case RangeLastWeek:
		return today.AddDate(0, 0, -13), today.AddDate(0, 0, -6)
	case RangeMonth:
		return today.AddDate(0, 0, -29), today.AddDate(0, 0, 1)
	case RangeThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, today.AddDate(0, 0, 1)
	case RangeLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.AddDate(0, -1, 0), first
	case RangeQuarter:
		return today.AddDate(0, 0, -89), today.AddDate(0, 0, 1)
	case RangeCustom:
		var start, end time.Time
		if t, err := time.ParseInLocation(dateLayout, startStr, now.Location()); err == nil {
			start = t
		}
		if t, err := time.ParseInLocation(dateLayout, endStr, now.Location()); err == nil {
			// end date is inclusive through end of day
			end = t.AddDate(0, 0, 1)
		}
		return start, end
	default:
		// RangeAll and anything unrecognized
		return time.Time{}, time.Time{}
	}
}

func matchesSearch(order models.Order, term string) bool {
	if strings.Contains(strings.ToLower(order.Order_number), term) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			return true
		}
	}
	return false
}

func hasMenuItem(order models.Order, menuItemId string) bool {
	for _, item := range order.Items {
		if item.Menu_item_id == menuItemId {
			return true
		}
	}
	return false
}

func active(field string) bool {
	return field != "" && field != FilterAll
}

// FilterOrders returns the orders satisfying every active predicate of f,
// preserving input order. Predicates never fail: bad custom dates widen the
// window instead of erroring.
func FilterOrders(orders []models.Order, f Filter, now time.Time) []models.Order {
	start, end := resolveDateRange(f.Date_range, f.Start_date, f.End_date, now)
	term := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if !start.IsZero() && order.Created_at.Before(start) {
			continue
		}
		if !end.IsZero() && !order.Created_at.Before(end) {
			continue
		}
		if active(f.Table_id) {
			if order.Table_id == nil || *order.Table_id != f.Table_id {
				continue
			}
		}
		if active(f.Status) && order.Status != f.Status {
			continue
		}
		if active(f.Order_type) && order.Order_type != f.Order_type {
			continue
		}
		if active(f.Menu_item_id) && !hasMenuItem(order, f.Menu_item_id) {
			continue
		}
		if term != "" && !matchesSearch(order, term) {
			continue
		}
		filtered = append(filtered, order)
	}
	return filtered
}
