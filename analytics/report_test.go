package analytics

import (
	"strings"
	"testing"
	"time"

	"go-restaurant-analytics/models"
)

func TestAssembleReportEntries(t *testing.T) {
	table := "T1"
	orders := []models.Order{
		{
			Order_id: "o1", Order_number: "ORD-1", Table_id: &table,
			Status: "completed", Order_type: "dine_in",
			Created_at: at(19, 30, 0), Updated_at: at(20, 15, 0),
			Sub_total: 400, Tax: 20, Total_amount: 400,
			Discount:             20,
			Payment_method:       strPtr("upi"),
			Amount_received:      floatPtr(300),
			Total_savings:        floatPtr(15),
			Credit_customer_name: strPtr("Ravi"),
			Items: []models.OrderItem{
				{Menu_item_id: "m1", Name: "Paneer Tikka", Quantity: 2, Line_total: 340},
				{Menu_item_id: "m2", Name: "Lassi", Quantity: 1, Line_total: 60},
			},
		},
	}
	recs := ReconcileAll(orders)
	sessions := GroupSessions(orders)
	doc := AssembleReport(recs, sessions, ReportOptions{
		Restaurant: "Spice Route",
		RangeLabel: "Today",
		Tables:     map[string]int{"T1": 4},
		Now:        time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC),
	})

	if doc.Report_id == "" {
		t.Error("report id must be set")
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(doc.Entries))
	}
	e := doc.Entries[0]
	if e.Table != "T4" {
		t.Errorf("table label = %q, want T4", e.Table)
	}
	if e.Items != "2x Paneer Tikka, 1x Lassi" {
		t.Errorf("item summary = %q", e.Items)
	}
	if e.Sub_total != 400 || e.Tax != 20 || e.Total != 400 {
		t.Errorf("money columns = %v/%v/%v", e.Sub_total, e.Tax, e.Total)
	}
	for _, want := range []string{"UPI", "Credit: 100.00 (Ravi)", "Discount: 20.00", "Savings: 15.00"} {
		if !strings.Contains(e.Payment, want) {
			t.Errorf("payment annotation missing %q:\n%s", want, e.Payment)
		}
	}
	if lines := strings.Split(e.Payment, "\n"); len(lines) != 4 {
		t.Errorf("expected 4 payment lines, got %d:\n%s", len(lines), e.Payment)
	}
}

func TestAssembleReportOmitsZeroSublines(t *testing.T) {
	orders := []models.Order{
		{Order_id: "o1", Status: "completed", Order_type: "takeaway",
			Created_at: at(12, 0, 0), Total_amount: 150, Payment_method: strPtr("cash")},
	}
	doc := AssembleReport(ReconcileAll(orders), GroupSessions(orders), ReportOptions{})
	e := doc.Entries[0]
	if strings.Contains(e.Payment, "Credit") || strings.Contains(e.Payment, "Discount") || strings.Contains(e.Payment, "Savings") {
		t.Errorf("zero sub-lines must be omitted: %q", e.Payment)
	}
	if e.Payment != "CASH" {
		t.Errorf("payment = %q, want CASH", e.Payment)
	}
	if e.Table != "-" {
		t.Errorf("table-less entry label = %q, want -", e.Table)
	}
}

func TestAssembleReportTruncation(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 8; i++ {
		orders = append(orders, models.Order{
			Order_id:     string(rune('a' + i)),
			Status:       "completed",
			Created_at:   at(10, i, 0),
			Total_amount: 100,
		})
	}
	recs := ReconcileAll(orders)
	sessions := GroupSessions(orders)
	doc := AssembleReport(recs, sessions, ReportOptions{MaxEntries: 3})

	if len(doc.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(doc.Entries))
	}
	if doc.Truncated != 5 {
		t.Errorf("Truncated = %d, want 5", doc.Truncated)
	}
	// the aggregate still reflects the full filtered set
	if doc.Aggregate.Total_orders != 8 || doc.Aggregate.Total_revenue != 800 {
		t.Errorf("aggregate must cover full set: %d orders, %v revenue",
			doc.Aggregate.Total_orders, doc.Aggregate.Total_revenue)
	}
}

func TestAssembleReportSessionEntryAggregatesMembers(t *testing.T) {
	table := "T9"
	orders := []models.Order{
		{Order_id: "o1", Table_id: &table, Status: "completed", Order_type: "dine_in",
			Payment_status: strPtr(PaymentStatusPaid), Payment_method: strPtr("cash"),
			Created_at: at(20, 0, 0), Updated_at: at(21, 0, 0),
			Sub_total: 200, Tax: 10, Total_amount: 210,
			Items: []models.OrderItem{{Menu_item_id: "m1", Name: "Thali", Quantity: 1, Line_total: 200}}},
		{Order_id: "o2", Table_id: &table, Status: "completed", Order_type: "dine_in",
			Payment_status: strPtr(PaymentStatusPaid), Payment_method: strPtr("cash"),
			Created_at: at(20, 20, 0), Updated_at: at(21, 0, 10),
			Sub_total: 100, Tax: 5, Total_amount: 105,
			Items: []models.OrderItem{{Menu_item_id: "m1", Name: "Thali", Quantity: 1, Line_total: 100}}},
	}
	sessions := GroupSessions(orders)
	if len(sessions) != 1 {
		t.Fatalf("setup expected one session, got %d", len(sessions))
	}
	doc := AssembleReport(ReconcileAll(orders), sessions, ReportOptions{})
	e := doc.Entries[0]
	if e.Order_count != 2 {
		t.Errorf("Order_count = %d, want 2", e.Order_count)
	}
	if e.Sub_total != 300 || e.Tax != 15 || e.Total != 315 {
		t.Errorf("summed columns = %v/%v/%v, want 300/15/315", e.Sub_total, e.Tax, e.Total)
	}
	if e.Items != "2x Thali" {
		t.Errorf("item summary = %q, want 2x Thali", e.Items)
	}
}
