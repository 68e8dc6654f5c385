package analytics

import (
	"sort"
	"time"

	"go-restaurant-analytics/models"
)

// Merge windows for same-table adjacency. Settled orders compare checkout
// (update) times, open orders compare creation times. Both bounds inclusive.
const (
	settledMergeWindow = 30 * time.Second
	openMergeWindow    = 15 * time.Minute
)

// Session is a group of orders inferred to belong to one dine-in visit or one
// checkout action. Rebuilt from the order snapshot on every call, never
// persisted.
type Session struct {
	Session_id   string         `json:"session_id"`
	Orders       []models.Order `json:"orders"`
	Primary      models.Order   `json:"primary"`
	Total_amount float64        `json:"total_amount"`
	Total_items  int            `json:"total_items"`
}

// PaymentStatusPaid is the recorded payment outcome that marks an order settled.
const PaymentStatusPaid = "paid"

// isSettled reports whether an order's payment is complete: completed status
// plus either a paid payment status or a recorded payment method.
func isSettled(order models.Order) bool {
	if order.Status != "completed" {
		return false
	}
	if order.Payment_status != nil && *order.Payment_status == PaymentStatusPaid {
		return true
	}
	return order.Payment_method != nil && *order.Payment_method != ""
}

// sameCheckout decides whether cur belongs to prev's session. Only the single
// nearest same-table predecessor is ever consulted; an older order that would
// have matched is not.
func sameCheckout(prev, cur models.Order) bool {
	prevSettled, curSettled := isSettled(prev), isSettled(cur)
	switch {
	case prevSettled && curSettled:
		if prev.Updated_at.IsZero() || cur.Updated_at.IsZero() {
			return false
		}
		gap := cur.Updated_at.Sub(prev.Updated_at)
		if gap < 0 {
			gap = -gap
		}
		return gap <= settledMergeWindow
	case !prevSettled && !curSettled:
		if prev.Created_at.IsZero() || cur.Created_at.IsZero() {
			return false
		}
		gap := cur.Created_at.Sub(prev.Created_at)
		if gap < 0 {
			gap = -gap
		}
		return gap <= openMergeWindow
	default:
		// one settled, one still open: the table turned over
		return false
	}
}

// GroupSessions partitions an order list into sessions. Every input order
// lands in exactly one session; duplicates by order id are dropped (first
// occurrence wins) before grouping.
func GroupSessions(orders []models.Order) []Session {
	seen := make(map[string]bool, len(orders))
	deduped := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if seen[order.Order_id] {
			continue
		}
		seen[order.Order_id] = true
		deduped = append(deduped, order)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Created_at.Before(deduped[j].Created_at)
	})

	sessions := make([]Session, 0, len(deduped))
	// nearest processed order per table, with the session it landed in
	type tail struct {
		order   models.Order
		session int
	}
	lastByTable := make(map[string]tail)

	for _, order := range deduped {
		if order.Table_id == nil || *order.Table_id == "" {
			sessions = append(sessions, newSession(order))
			continue
		}
		tableId := *order.Table_id
		prev, ok := lastByTable[tableId]
		if ok && sameCheckout(prev.order, order) {
			sessions[prev.session].append(order)
			lastByTable[tableId] = tail{order: order, session: prev.session}
			continue
		}
		sessions = append(sessions, newSession(order))
		lastByTable[tableId] = tail{order: order, session: len(sessions) - 1}
	}
	return sessions
}

func newSession(order models.Order) Session {
	s := Session{
		Session_id: order.Order_id,
		Primary:    order,
	}
	s.append(order)
	return s
}

func (s *Session) append(order models.Order) {
	s.Orders = append(s.Orders, order)
	s.Total_amount += order.Total_amount
	for _, item := range order.Items {
		s.Total_items += item.Quantity
	}
}
