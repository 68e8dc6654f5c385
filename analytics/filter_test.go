package analytics

import (
	"testing"
	"time"

	"go-restaurant-analytics/models"
)

var filterNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func orderAt(id string, created time.Time) models.Order {
	return buildOrder(orderSpec{id: id, status: "completed", created: created, updated: created})
}

func ids(orders []models.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Order_id)
	}
	return out
}

func TestFilterDateRanges(t *testing.T) {
	day := func(offset int, h, m int) time.Time {
		return time.Date(2026, time.March, 10+offset, h, m, 0, 0, time.UTC)
	}
	orders := []models.Order{
		orderAt("today-early", day(0, 0, 1)),
		orderAt("yesterday-late", day(-1, 23, 59)),
		orderAt("six-days-ago", day(-6, 10, 0)),
		orderAt("ten-days-ago", day(-10, 10, 0)),
		orderAt("forty-days-ago", day(-40, 10, 0)),
		orderAt("last-month", time.Date(2026, time.February, 15, 10, 0, 0, 0, time.UTC)),
	}
	tests := []struct {
		mode string
		want []string
	}{
		{RangeToday, []string{"today-early"}},
		{RangeYesterday, []string{"yesterday-late"}},
		{RangeWeek, []string{"today-early", "yesterday-late", "six-days-ago"}},
		{RangeLastWeek, []string{"ten-days-ago"}},
		{RangeMonth, []string{"today-early", "yesterday-late", "six-days-ago", "ten-days-ago", "last-month"}},
		// ten-days-ago normalizes to Feb 28, forty-days-ago to Jan 29
		{RangeThisMonth, []string{"today-early", "yesterday-late", "six-days-ago"}},
		{RangeLastMonth, []string{"ten-days-ago", "last-month"}},
		{RangeQuarter, []string{"today-early", "yesterday-late", "six-days-ago", "ten-days-ago", "forty-days-ago", "last-month"}},
		{RangeAll, []string{"today-early", "yesterday-late", "six-days-ago", "ten-days-ago", "forty-days-ago", "last-month"}},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := ids(FilterOrders(orders, Filter{Date_range: tt.mode}, filterNow))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterTodayBoundary(t *testing.T) {
	// yesterday 23:59 is out, today 00:01 is in
	orders := []models.Order{
		orderAt("old", time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)),
		orderAt("new", time.Date(2026, time.March, 10, 0, 1, 0, 0, time.UTC)),
	}
	got := ids(FilterOrders(orders, Filter{Date_range: RangeToday}, filterNow))
	if len(got) != 1 || got[0] != "new" {
		t.Errorf("today filter kept %v, want [new]", got)
	}
}

func TestFilterCustomRange(t *testing.T) {
	orders := []models.Order{
		orderAt("before", time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)),
		orderAt("inside", time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)),
		orderAt("end-of-day", time.Date(2026, time.March, 7, 23, 59, 0, 0, time.UTC)),
		orderAt("after", time.Date(2026, time.March, 8, 0, 1, 0, 0, time.UTC)),
	}
	f := Filter{Date_range: RangeCustom, Start_date: "2026-03-02", End_date: "2026-03-07"}
	got := ids(FilterOrders(orders, f, filterNow))
	if len(got) != 2 || got[0] != "inside" || got[1] != "end-of-day" {
		t.Errorf("custom range kept %v, want [inside end-of-day]", got)
	}

	// unparseable bounds widen rather than fail
	f = Filter{Date_range: RangeCustom, Start_date: "garbage", End_date: "2026-03-07"}
	got = ids(FilterOrders(orders, f, filterNow))
	if len(got) != 3 {
		t.Errorf("bad start date should leave start unbounded, kept %v", got)
	}
	f = Filter{Date_range: RangeCustom, Start_date: "garbage", End_date: "also garbage"}
	if got = ids(FilterOrders(orders, f, filterNow)); len(got) != 4 {
		t.Errorf("two bad bounds should keep everything, kept %v", got)
	}
}

func TestFilterExactMatchFields(t *testing.T) {
	base := at(10, 0, 0)
	t1 := buildOrder(orderSpec{id: "a", table: "T1", status: "completed", created: base, updated: base})
	t2 := buildOrder(orderSpec{id: "b", table: "T2", status: "placed", created: base, updated: base})
	takeaway := buildOrder(orderSpec{id: "c", status: "completed", created: base, updated: base})
	takeaway.Order_type = "takeaway"
	orders := []models.Order{t1, t2, takeaway}

	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{"table", Filter{Table_id: "T1"}, []string{"a"}},
		{"table sentinel", Filter{Table_id: FilterAll}, []string{"a", "b", "c"}},
		{"status", Filter{Status: "placed"}, []string{"b"}},
		{"order type", Filter{Order_type: "takeaway"}, []string{"c"}},
		{"anded", Filter{Status: "completed", Table_id: "T2"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterOrders(orders, tt.f, filterNow))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterSearchAndMenuItem(t *testing.T) {
	base := at(10, 0, 0)
	a := buildOrder(orderSpec{id: "a", status: "completed", created: base, updated: base,
		items: []models.OrderItem{{Menu_item_id: "m1", Name: "Paneer Tikka", Quantity: 1, Line_total: 220}}})
	b := buildOrder(orderSpec{id: "b", status: "completed", created: base, updated: base,
		items: []models.OrderItem{{Menu_item_id: "m2", Name: "Masala Dosa", Quantity: 1, Line_total: 140}}})
	b.Order_number = "ORD-1042"
	orders := []models.Order{a, b}

	if got := ids(FilterOrders(orders, Filter{Search: "PANEER"}, filterNow)); len(got) != 1 || got[0] != "a" {
		t.Errorf("case-insensitive item search kept %v", got)
	}
	if got := ids(FilterOrders(orders, Filter{Search: "1042"}, filterNow)); len(got) != 1 || got[0] != "b" {
		t.Errorf("order number search kept %v", got)
	}
	if got := ids(FilterOrders(orders, Filter{Menu_item_id: "m2"}, filterNow)); len(got) != 1 || got[0] != "b" {
		t.Errorf("menu item filter kept %v", got)
	}
	if got := ids(FilterOrders(orders, Filter{Menu_item_id: FilterAll}, filterNow)); len(got) != 2 {
		t.Errorf("menu item sentinel kept %v", got)
	}
}
