package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go-restaurant-analytics/database"
	"go-restaurant-analytics/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "order")
var notificationCollection *mongo.Collection = database.OpenCollection(database.Client, "notification")

var validate = validator.New()

const defaultOrderLimit = 1000

// listOrders materializes the order snapshot the analytics pipeline runs on.
// Newest first so the limit keeps the most recent records.
func listOrders(ctx context.Context, restaurantId string, limit int64) ([]models.Order, error) {
	filter := bson.M{}
	if restaurantId != "" {
		filter["restaurant_id"] = restaurantId
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := orderCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultOrderLimit)), 10, 64)
		if err != nil || limit < 1 {
			limit = defaultOrderLimit
		}
		orders, err := listOrders(ctx, c.Query("restaurant_id"), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var order models.Order
		err := orderCollection.FindOne(ctx, bson.M{"order_id": orderId}).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order was not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// statusPatch is the body of the status-mutation endpoint: the new status
// plus the recorded payment outcome written at checkout.
type statusPatch struct {
	Status          string                `json:"status" validate:"required,eq=draft|eq=placed|eq=confirmed|eq=preparing|eq=ready|eq=completed|eq=cancelled"`
	Payment_status  *string               `json:"payment_status"`
	Payment_method  *string               `json:"payment_method" validate:"omitempty,eq=cash|eq=upi|eq=bank|eq=split"`
	Split_payments  []models.SplitPayment `json:"split_payments"`
	Amount_received *float64              `json:"amount_received"`
	Credit_amount   *float64              `json:"credit_amount"`
}

// UpdateOrderStatus records a status transition and its payment outcome, then
// pushes refreshed dashboard statistics to websocket clients.
func UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orderId := c.Param("order_id")
		var patch statusPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var updateObj primitive.D
		updateObj = append(updateObj, bson.E{Key: "status", Value: patch.Status})
		if patch.Payment_status != nil {
			updateObj = append(updateObj, bson.E{Key: "payment_status", Value: patch.Payment_status})
		}
		if patch.Payment_method != nil {
			updateObj = append(updateObj, bson.E{Key: "payment_method", Value: patch.Payment_method})
		}
		if patch.Split_payments != nil {
			updateObj = append(updateObj, bson.E{Key: "split_payments", Value: patch.Split_payments})
		}
		if patch.Amount_received != nil {
			updateObj = append(updateObj, bson.E{Key: "amount_received", Value: patch.Amount_received})
		}
		if patch.Credit_amount != nil {
			updateObj = append(updateObj, bson.E{Key: "credit_amount", Value: patch.Credit_amount})
		}
		updated_at, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: updated_at})

		result, err := orderCollection.UpdateOne(
			ctx,
			bson.M{"order_id": orderId},
			bson.D{{Key: "$set", Value: updateObj}},
			options.Update().SetUpsert(false),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order status update failed"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order was not found"})
			return
		}

		notification := models.Notification{
			ID:         primitive.NewObjectID(),
			Order_id:   orderId,
			Status:     patch.Status,
			User_role:  "WAITER",
			Created_at: updated_at,
		}
		if _, err := notificationCollection.InsertOne(ctx, notification); err != nil {
			// the mutation already landed, a lost notification is not fatal
			c.JSON(http.StatusOK, result)
			return
		}

		go broadcastDashboard(c.Query("restaurant_id"))
		c.JSON(http.StatusOK, result)
	}
}
