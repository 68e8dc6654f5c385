package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Table struct {
	ID           primitive.ObjectID `bson:"_id"`
	Table_id     string             `json:"table_id"`
	Table_number *int               `json:"table_number" validate:"required"`
	Area         *string            `json:"area"`
	Created_at   time.Time          `json:"created_at"`
	Updated_at   time.Time          `json:"updated_at"`
}
