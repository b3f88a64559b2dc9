package domain

import "time"

// Order is a single-product purchase by a user, identified only by email.
// ProductID is not checked against the products sheet.
type Order struct {
	ID           int       `json:"id"`
	UserEmail    string    `json:"user_email"`
	ProductID    int       `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductPrice float64   `json:"product_price"`
	CreatedAt    time.Time `json:"created_at"`
}

func (o Order) Kind() Kind    { return KindOrders }
func (o Order) RecordID() int { return o.ID }

// Row encodes the order as [id, user_email, product_id, product_name, product_price, created_at].
func (o Order) Row() []interface{} {
	return []interface{}{o.ID, o.UserEmail, o.ProductID, o.ProductName, o.ProductPrice, FormatTimestamp(o.CreatedAt)}
}

func (o Order) Stamp(id int, createdAt time.Time) Record {
	o.ID = id
	o.CreatedAt = createdAt
	return o
}

// DecodeOrder builds an Order from a header-keyed orders row.
func DecodeOrder(row map[string]interface{}) (Order, error) {
	var (
		o   Order
		err error
	)

	if o.ID, err = cellInt(row, "id"); err != nil {
		return Order{}, err
	}
	if o.ProductID, err = cellInt(row, "product_id"); err != nil {
		return Order{}, err
	}
	if o.ProductPrice, err = cellFloat(row, "product_price"); err != nil {
		return Order{}, err
	}
	if o.CreatedAt, err = cellTime(row, "created_at"); err != nil {
		return Order{}, err
	}
	o.UserEmail = cellString(row, "user_email")
	o.ProductName = cellString(row, "product_name")

	return o, nil
}
