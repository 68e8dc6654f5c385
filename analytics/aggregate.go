package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SplitBucket is the synthetic payment-breakdown bucket carrying the full
// total of every split-paid order, alongside its decomposed legs. Summing all
// buckets therefore overcounts revenue by the split-order totals; this
// duplication is deliberate and consumers must not "fix" it by totalling.
const SplitBucket = "SPLIT"

// Uncategorized is the category bucket for line items whose menu item has no
// category on record.
const Uncategorized = "Uncategorized"

type PopularItem struct {
	Menu_item_id string  `json:"menu_item_id"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Revenue      float64 `json:"revenue"`
}

type TableRevenue struct {
	Table_id    string  `json:"table_id"`
	Order_count int     `json:"order_count"`
	Revenue     float64 `json:"revenue"`
}

type CategorySale struct {
	Category   string  `json:"category"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type HourBucket struct {
	Hour        int `json:"hour"`
	Order_count int `json:"order_count"`
}

type DayBucket struct {
	Weekday     string `json:"weekday"`
	Order_count int    `json:"order_count"`
}

type PaymentBucket struct {
	Method      string  `json:"method"`
	Amount      float64 `json:"amount"`
	Order_count int     `json:"order_count"`
}

// ReportAggregate is the rolled-up statistics document for one filtered and
// grouped order set. Revenue, credit, discount, savings, item and table
// figures come from completed orders only; the hourly and weekday histograms
// count all filtered orders regardless of status (activity view).
type ReportAggregate struct {
	Total_orders     int `json:"total_orders"`
	Completed_orders int `json:"completed_orders"`
	Total_sessions   int `json:"total_sessions"`

	Total_revenue      float64 `json:"total_revenue"`
	Actual_revenue     float64 `json:"actual_revenue"`
	Outstanding_credit float64 `json:"outstanding_credit"`
	Total_discount     float64 `json:"total_discount"`
	Total_savings      float64 `json:"total_savings"`

	Average_order_value   float64 `json:"average_order_value"`
	Average_session_value float64 `json:"average_session_value"`

	Popular_items     []PopularItem   `json:"popular_items"`
	Table_revenue     []TableRevenue  `json:"table_revenue"`
	Category_sales    []CategorySale  `json:"category_sales"`
	Hourly            []HourBucket    `json:"hourly"`
	Weekdays          []DayBucket     `json:"weekdays"`
	Payment_breakdown []PaymentBucket `json:"payment_breakdown"`

	// order ids whose recorded split legs do not sum to their total
	Inconsistent_orders []string `json:"inconsistent_orders,omitempty"`
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// percentage of part against whole, 0 when whole is 0. Decimal division so
// report percentages are stable across platforms.
func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	pct, _ := decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(whole)).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return pct
}

func popularItems(recs []Reconciled, topN int) []PopularItem {
	byItem := make(map[string]*PopularItem)
	for _, r := range recs {
		if !r.Revenue_eligible {
			continue
		}
		for _, item := range r.Order.Items {
			p, ok := byItem[item.Menu_item_id]
			if !ok {
				p = &PopularItem{Menu_item_id: item.Menu_item_id, Name: item.Name}
				byItem[item.Menu_item_id] = p
			}
			p.Quantity += item.Quantity
			p.Revenue += item.Line_total
		}
	}
	items := make([]PopularItem, 0, len(byItem))
	for _, p := range byItem {
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Revenue > items[j].Revenue
	})
	if topN > 0 && len(items) > topN {
		items = items[:topN]
	}
	return items
}

func tableRanking(recs []Reconciled) []TableRevenue {
	byTable := make(map[string]*TableRevenue)
	for _, r := range recs {
		if !r.Revenue_eligible || r.Order.Table_id == nil || *r.Order.Table_id == "" {
			continue
		}
		t, ok := byTable[*r.Order.Table_id]
		if !ok {
			t = &TableRevenue{Table_id: *r.Order.Table_id}
			byTable[*r.Order.Table_id] = t
		}
		t.Order_count++
		t.Revenue += r.Billed_total
	}
	tables := make([]TableRevenue, 0, len(byTable))
	for _, t := range byTable {
		tables = append(tables, *t)
	}
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Revenue != tables[j].Revenue {
			return tables[i].Revenue > tables[j].Revenue
		}
		return tables[i].Table_id < tables[j].Table_id
	})
	return tables
}

func categorySales(recs []Reconciled, categories map[string]string, totalRevenue float64) []CategorySale {
	byCategory := make(map[string]*CategorySale)
	for _, r := range recs {
		if !r.Revenue_eligible {
			continue
		}
		for _, item := range r.Order.Items {
			category := categories[item.Menu_item_id]
			if category == "" {
				category = Uncategorized
			}
			c, ok := byCategory[category]
			if !ok {
				c = &CategorySale{Category: category}
				byCategory[category] = c
			}
			c.Quantity += item.Quantity
			c.Revenue += item.Line_total
		}
	}
	sales := make([]CategorySale, 0, len(byCategory))
	for _, c := range byCategory {
		c.Percentage = percentage(c.Revenue, totalRevenue)
		sales = append(sales, *c)
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Revenue != sales[j].Revenue {
			return sales[i].Revenue > sales[j].Revenue
		}
		return sales[i].Category < sales[j].Category
	})
	return sales
}

func histograms(recs []Reconciled) ([]HourBucket, []DayBucket) {
	hourly := make([]HourBucket, 24)
	for h := range hourly {
		hourly[h].Hour = h
	}
	weekdays := make([]DayBucket, 7)
	for d := range weekdays {
		weekdays[d].Weekday = weekdayNames[d]
	}
	for _, r := range recs {
		created := r.Order.Created_at
		if created.IsZero() {
			continue
		}
		hourly[created.Hour()].Order_count++
		weekdays[int(created.Weekday())].Order_count++
	}
	return hourly, weekdays
}

func paymentBreakdown(recs []Reconciled) []PaymentBucket {
	byMethod := make(map[string]*PaymentBucket)
	add := func(method string, amount float64, countOrder bool) {
		key := strings.ToUpper(method)
		b, ok := byMethod[key]
		if !ok {
			b = &PaymentBucket{Method: key}
			byMethod[key] = b
		}
		b.Amount += amount
		if countOrder {
			b.Order_count++
		}
	}
	for _, r := range recs {
		if !r.Revenue_eligible {
			continue
		}
		isSplit := r.Order.Payment_method != nil && *r.Order.Payment_method == MethodSplit
		if isSplit {
			for _, p := range r.Payments {
				add(p.Method, p.Amount, false)
			}
			// synthetic bucket on top of the decomposed legs
			add(SplitBucket, r.Billed_total, true)
			continue
		}
		for _, p := range r.Payments {
			add(p.Method, p.Amount, true)
		}
	}
	buckets := make([]PaymentBucket, 0, len(byMethod))
	for _, b := range byMethod {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Amount != buckets[j].Amount {
			return buckets[i].Amount > buckets[j].Amount
		}
		return buckets[i].Method < buckets[j].Method
	})
	return buckets
}

// BuildAggregate rolls reconciled orders and their sessions into report
// statistics. categories maps menu item id to category name for the category
// breakdown; topN truncates the popular-items ranking (<=0 means unlimited).
// An empty input yields a well-formed zero-valued aggregate.
func BuildAggregate(recs []Reconciled, sessions []Session, categories map[string]string, topN int) ReportAggregate {
	agg := ReportAggregate{
		Total_orders:   len(recs),
		Total_sessions: len(sessions),
	}
	for _, r := range recs {
		if r.Inconsistent {
			agg.Inconsistent_orders = append(agg.Inconsistent_orders, r.Order.Order_id)
		}
		if !r.Revenue_eligible {
			continue
		}
		agg.Completed_orders++
		agg.Total_revenue += r.Billed_total
		agg.Actual_revenue += r.Actual_revenue
		agg.Outstanding_credit += r.Credit_amount
		agg.Total_discount += r.Discount
		agg.Total_savings += r.Savings
	}
	if agg.Completed_orders > 0 {
		agg.Average_order_value = agg.Total_revenue / float64(agg.Completed_orders)
	}
	if agg.Total_sessions > 0 {
		agg.Average_session_value = agg.Total_revenue / float64(agg.Total_sessions)
	}

	agg.Popular_items = popularItems(recs, topN)
	agg.Table_revenue = tableRanking(recs)
	agg.Category_sales = categorySales(recs, categories, agg.Total_revenue)
	agg.Hourly, agg.Weekdays = histograms(recs)
	agg.Payment_breakdown = paymentBreakdown(recs)
	return agg
}
