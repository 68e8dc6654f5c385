package analytics

import (
	"github.com/shopspring/decimal"

	"go-restaurant-analytics/models"
)

// Payment method recorded on orders; DefaultMethod is assumed when a
// non-split order carries no method at all.
const (
	MethodSplit   = "split"
	DefaultMethod = "cash"
)

// PaymentPart is one (method, amount) leg of an order's payment
// decomposition. Legs sum to the billed total for consistent orders.
type PaymentPart struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

// Reconciled carries the derived money fields of a single order.
type Reconciled struct {
	Order models.Order `json:"order"`

	Billed_total   float64       `json:"billed_total"`
	Credit_amount  float64       `json:"credit_amount"`
	Actual_revenue float64       `json:"actual_revenue"`
	Discount       float64       `json:"discount"`
	Savings        float64       `json:"savings"`
	Payments       []PaymentPart `json:"payments"`

	// Revenue_eligible gates contribution to revenue/credit/discount sums:
	// only completed orders count.
	Revenue_eligible bool `json:"revenue_eligible"`
	// Inconsistent marks a split order whose recorded legs do not sum to the
	// billed total. The recorded data is still used as-is.
	Inconsistent bool `json:"inconsistent"`
}

// creditAmount resolves outstanding credit: an explicit positive credit
// amount wins, else it is derived from amount received, else zero. Always
// clamped to [0, total].
func creditAmount(order models.Order) float64 {
	total := order.Total_amount
	if order.Credit_amount != nil && *order.Credit_amount > 0 {
		if *order.Credit_amount > total {
			return total
		}
		return *order.Credit_amount
	}
	if order.Amount_received != nil {
		credit := total - *order.Amount_received
		if credit < 0 {
			return 0
		}
		if credit > total {
			return total
		}
		return credit
	}
	return 0
}

// splitBalanced checks the recorded legs against the billed total. Decimal
// comparison: two floats that print the same must compare equal here.
func splitBalanced(parts []models.SplitPayment, total float64) bool {
	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(decimal.NewFromFloat(p.Amount))
	}
	return sum.Equal(decimal.NewFromFloat(total))
}

// Reconcile derives the money fields of one order. Pure; malformed or absent
// optional fields resolve to documented defaults, never to an error.
func Reconcile(order models.Order) Reconciled {
	r := Reconciled{
		Order:            order,
		Billed_total:     order.Total_amount,
		Discount:         order.Discount,
		Revenue_eligible: order.Status == "completed",
	}
	if order.Total_savings != nil {
		r.Savings = *order.Total_savings
	}

	r.Credit_amount = creditAmount(order)
	r.Actual_revenue = r.Billed_total - r.Credit_amount

	method := DefaultMethod
	if order.Payment_method != nil && *order.Payment_method != "" {
		method = *order.Payment_method
	}
	if method == MethodSplit {
		// recorded legs are used verbatim, even when they do not balance
		for _, p := range order.Split_payments {
			r.Payments = append(r.Payments, PaymentPart{Method: p.Method, Amount: p.Amount})
		}
		r.Inconsistent = !splitBalanced(order.Split_payments, r.Billed_total)
	} else {
		r.Payments = []PaymentPart{{Method: method, Amount: r.Billed_total}}
	}
	return r
}

// ReconcileAll maps Reconcile over a snapshot.
func ReconcileAll(orders []models.Order) []Reconciled {
	out := make([]Reconciled, 0, len(orders))
	for _, order := range orders {
		out = append(out, Reconcile(order))
	}
	return out
}
