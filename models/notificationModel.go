package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification records an order status change pushed to dashboard clients.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id"`
	Order_id   string             `json:"order_id"`
	Status     string             `json:"status"`
	User_role  string             `json:"user_role"`
	Is_read    bool               `json:"is_read"`
	Created_at time.Time          `json:"created_at"`
}
