package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id"`
	Menu_item_id string             `json:"menu_item_id"`
	Name         string             `json:"name" validate:"required,min=2,max=100"`
	Category     *string            `json:"category"`
	Price        float64            `json:"price" validate:"required"`
	Available    bool               `json:"available"`
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
}
