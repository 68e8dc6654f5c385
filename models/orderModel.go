package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is one line of an order. Line_total is unit price times quantity
// and is written by the ordering surface, not recomputed here.
type OrderItem struct {
	Menu_item_id   string   `json:"menu_item_id"`
	Name           string   `json:"name"`
	Unit_price     float64  `json:"unit_price"`
	Quantity       int      `json:"quantity"`
	Line_total     float64  `json:"line_total"`
	Customizations []string `json:"customizations,omitempty"`
	Note           *string  `json:"note,omitempty"`
}

// SplitPayment is one leg of a split-paid order.
type SplitPayment struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id"`
	Order_id      string             `json:"order_id"`
	Order_number  string             `json:"order_number"`
	Restaurant_id string             `json:"restaurant_id"`
	Table_id      *string            `json:"table_id"`
	Status        string             `json:"status" validate:"required,eq=draft|eq=placed|eq=confirmed|eq=preparing|eq=ready|eq=completed|eq=cancelled"`
	Order_type    string             `json:"order_type" validate:"required,eq=dine_in|eq=takeaway|eq=delivery"`
	Created_at    time.Time          `json:"created_at"`
	Updated_at    time.Time          `json:"updated_at"`
	Items         []OrderItem        `json:"items"`

	Sub_total    float64 `json:"sub_total"`
	Discount     float64 `json:"discount"`
	Tax          float64 `json:"tax"`
	Total_amount float64 `json:"total_amount"`

	Payment_status *string        `json:"payment_status"`
	Payment_method *string        `json:"payment_method" validate:"omitempty,eq=cash|eq=upi|eq=bank|eq=split"`
	Split_payments []SplitPayment `json:"split_payments,omitempty"`

	Is_credit             *bool    `json:"is_credit,omitempty"`
	Credit_amount         *float64 `json:"credit_amount,omitempty"`
	Amount_received       *float64 `json:"amount_received,omitempty"`
	Credit_customer_name  *string  `json:"credit_customer_name,omitempty"`
	Credit_customer_phone *string  `json:"credit_customer_phone,omitempty"`

	Total_savings  *float64 `json:"total_savings,omitempty"`
	Applied_coupon *string  `json:"applied_coupon,omitempty"`
}
