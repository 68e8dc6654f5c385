package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-restaurant-analytics/analytics"
	"go-restaurant-analytics/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	dashboardTopItems = 5
	reportTopItems    = 8
)

func parseFilter(c *gin.Context) analytics.Filter {
	return analytics.Filter{
		Date_range:   c.DefaultQuery("date_range", analytics.RangeAll),
		Start_date:   c.Query("start_date"),
		End_date:     c.Query("end_date"),
		Table_id:     c.Query("table_id"),
		Status:       c.Query("status"),
		Order_type:   c.Query("order_type"),
		Menu_item_id: c.Query("menu_item_id"),
		Search:       c.Query("search"),
	}
}

// snapshot pulls the order list plus the table and menu lookups the
// aggregator needs. One immutable snapshot per request.
func snapshot(ctx context.Context, restaurantId string) ([]models.Order, map[string]int, map[string]string, error) {
	orders, err := listOrders(ctx, restaurantId, defaultOrderLimit)
	if err != nil {
		return nil, nil, nil, err
	}
	tables, err := listTables(ctx, restaurantId)
	if err != nil {
		return nil, nil, nil, err
	}
	menuItems, err := listMenuItems(ctx, restaurantId)
	if err != nil {
		return nil, nil, nil, err
	}

	tableNumbers := make(map[string]int, len(tables))
	for _, t := range tables {
		if t.Table_number != nil {
			tableNumbers[t.Table_id] = *t.Table_number
		}
	}
	categories := make(map[string]string, len(menuItems))
	for _, m := range menuItems {
		if m.Category != nil {
			categories[m.Menu_item_id] = *m.Category
		}
	}
	return orders, tableNumbers, categories, nil
}

// singletonSessions wraps each order in its own session for ungrouped reports.
func singletonSessions(orders []models.Order) []analytics.Session {
	sessions := make([]analytics.Session, 0, len(orders))
	for _, order := range orders {
		sessions = append(sessions, analytics.GroupSessions([]models.Order{order})...)
	}
	return sessions
}

// GetDashboardStats serves the live dashboard figures: the full aggregate for
// the requested filter window, popular items truncated for card display.
func GetDashboardStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, _, categories, err := snapshot(ctx, c.Query("restaurant_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading orders"})
			return
		}

		filtered := analytics.FilterOrders(orders, parseFilter(c), time.Now())
		sessions := analytics.GroupSessions(filtered)
		recs := analytics.ReconcileAll(filtered)
		agg := analytics.BuildAggregate(recs, sessions, categories, dashboardTopItems)
		c.JSON(http.StatusOK, agg)
	}
}

// GetReport assembles the exportable analytics document for the rendering
// collaborator. group=false renders one entry per order instead of per
// session; the aggregate always covers the full filtered set.
func GetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, tableNumbers, categories, err := snapshot(ctx, c.Query("restaurant_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while loading orders"})
			return
		}

		filter := parseFilter(c)
		filtered := analytics.FilterOrders(orders, filter, time.Now())

		var sessions []analytics.Session
		if c.DefaultQuery("group", "true") == "false" {
			sessions = singletonSessions(filtered)
		} else {
			sessions = analytics.GroupSessions(filtered)
		}

		maxEntries, err := strconv.Atoi(c.DefaultQuery("max_entries", "0"))
		if err != nil {
			maxEntries = 0
		}

		doc := analytics.AssembleReport(analytics.ReconcileAll(filtered), sessions, analytics.ReportOptions{
			Restaurant: c.Query("restaurant_name"),
			RangeLabel: filter.Date_range,
			Tables:     tableNumbers,
			Categories: categories,
			TopItems:   reportTopItems,
			MaxEntries: maxEntries,
		})
		c.JSON(http.StatusOK, doc)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
var dashboardClients = make(map[*websocket.Conn]bool)
var mu sync.Mutex

// HandleDashboardSocket registers a dashboard client for live statistics.
func HandleDashboardSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}
		defer conn.Close()

		mu.Lock()
		dashboardClients[conn] = true
		mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				mu.Lock()
				delete(dashboardClients, conn)
				mu.Unlock()
				break
			}
		}
	}
}

type dashboardEvent struct {
	Event   string                    `json:"event"`
	Payload analytics.ReportAggregate `json:"payload"`
}

// broadcastDashboard recomputes today's statistics and fans them out to all
// connected dashboard clients.
func broadcastDashboard(restaurantId string) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	orders, _, categories, err := snapshot(ctx, restaurantId)
	if err != nil {
		log.Println("dashboard broadcast skipped:", err)
		return
	}
	filtered := analytics.FilterOrders(orders, analytics.Filter{Date_range: analytics.RangeToday}, time.Now())
	sessions := analytics.GroupSessions(filtered)
	agg := analytics.BuildAggregate(analytics.ReconcileAll(filtered), sessions, categories, dashboardTopItems)

	message := dashboardEvent{Event: "dashboardStats", Payload: agg}

	mu.Lock()
	defer mu.Unlock()
	for client := range dashboardClients {
		if err := client.WriteJSON(message); err != nil {
			log.Println("dropping dashboard client:", err)
			client.Close()
			delete(dashboardClients, client)
		}
	}
}
