package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxEntries caps the detail list of an exported report. The aggregate
// statistics always cover the full filtered set regardless of this cap.
const DefaultMaxEntries = 50

const entryTimeLayout = "02 Jan 2006 15:04"

// ReportEntry is one human-readable line of the exported report: one session,
// or one order when grouping is off.
type ReportEntry struct {
	Table       string  `json:"table"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	Order_type  string  `json:"order_type"`
	Items       string  `json:"items"`
	Order_count int     `json:"order_count"`
	Sub_total   float64 `json:"sub_total"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	Payment     string  `json:"payment"`
}

// ReportDocument is the immutable analytics document handed to the rendering
// collaborator.
type ReportDocument struct {
	Report_id    string          `json:"report_id"`
	Restaurant   string          `json:"restaurant"`
	Range_label  string          `json:"range_label"`
	Generated_at time.Time       `json:"generated_at"`
	Aggregate    ReportAggregate `json:"aggregate"`
	Entries      []ReportEntry   `json:"entries"`
	// entries beyond the cap, dropped from the detail list only
	Truncated int `json:"truncated"`
}

// ReportOptions configures assembly. Tables maps table id to display number.
type ReportOptions struct {
	Restaurant string
	RangeLabel string
	Tables     map[string]int
	Categories map[string]string
	TopItems   int
	MaxEntries int
	Now        time.Time
}

func itemSummary(parts map[string]int, order []string) string {
	lines := make([]string, 0, len(order))
	for _, name := range order {
		lines = append(lines, fmt.Sprintf("%dx %s", parts[name], name))
	}
	return strings.Join(lines, ", ")
}

func tableLabel(tableId *string, tables map[string]int) string {
	if tableId == nil || *tableId == "" {
		return "-"
	}
	if number, ok := tables[*tableId]; ok {
		return "T" + strconv.Itoa(number)
	}
	return *tableId
}

// paymentAnnotation renders the payment column: the method line first, then
// credit, discount and savings sub-lines for whichever are non-zero.
func paymentAnnotation(methods []string, credit, discount, savings float64, creditName string) string {
	lines := []string{strings.ToUpper(strings.Join(methods, " + "))}
	if credit > 0 {
		line := fmt.Sprintf("Credit: %.2f", credit)
		if creditName != "" {
			line += " (" + creditName + ")"
		}
		lines = append(lines, line)
	}
	if discount > 0 {
		lines = append(lines, fmt.Sprintf("Discount: %.2f", discount))
	}
	if savings > 0 {
		lines = append(lines, fmt.Sprintf("Savings: %.2f", savings))
	}
	return strings.Join(lines, "\n")
}

func sessionEntry(session Session, byOrder map[string]Reconciled, tables map[string]int) ReportEntry {
	entry := ReportEntry{
		Table:       tableLabel(session.Primary.Table_id, tables),
		Date:        session.Primary.Created_at.Format(entryTimeLayout),
		Status:      session.Primary.Status,
		Order_type:  session.Primary.Order_type,
		Order_count: len(session.Orders),
		Total:       session.Total_amount,
	}

	quantities := make(map[string]int)
	var nameOrder []string
	var credit, discount, savings float64
	var creditName string
	methodSeen := make(map[string]bool)
	var methods []string

	for _, order := range session.Orders {
		entry.Sub_total += order.Sub_total
		entry.Tax += order.Tax
		for _, item := range order.Items {
			if _, ok := quantities[item.Name]; !ok {
				nameOrder = append(nameOrder, item.Name)
			}
			quantities[item.Name] += item.Quantity
		}
		rec, ok := byOrder[order.Order_id]
		if !ok {
			rec = Reconcile(order)
		}
		credit += rec.Credit_amount
		discount += rec.Discount
		savings += rec.Savings
		if creditName == "" && order.Credit_customer_name != nil {
			creditName = *order.Credit_customer_name
		}
		for _, p := range rec.Payments {
			if !methodSeen[p.Method] {
				methodSeen[p.Method] = true
				methods = append(methods, p.Method)
			}
		}
	}

	entry.Items = itemSummary(quantities, nameOrder)
	entry.Payment = paymentAnnotation(methods, credit, discount, savings, creditName)
	return entry
}

// AssembleReport combines the full-set aggregate with per-session detail
// entries, truncating the detail list to opts.MaxEntries (DefaultMaxEntries
// when unset). Sessions are rendered in input order; pass singleton sessions
// for an ungrouped report.
func AssembleReport(recs []Reconciled, sessions []Session, opts ReportOptions) ReportDocument {
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	doc := ReportDocument{
		Report_id:    uuid.NewString(),
		Restaurant:   opts.Restaurant,
		Range_label:  opts.RangeLabel,
		Generated_at: now,
		Aggregate:    BuildAggregate(recs, sessions, opts.Categories, opts.TopItems),
	}

	byOrder := make(map[string]Reconciled, len(recs))
	for _, r := range recs {
		byOrder[r.Order.Order_id] = r
	}

	limit := len(sessions)
	if limit > maxEntries {
		doc.Truncated = limit - maxEntries
		limit = maxEntries
	}
	doc.Entries = make([]ReportEntry, 0, limit)
	for _, session := range sessions[:limit] {
		doc.Entries = append(doc.Entries, sessionEntry(session, byOrder, opts.Tables))
	}
	return doc
}
