package domain

import "time"

// Product represents a product in the catalog
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p Product) Kind() Kind    { return KindProducts }
func (p Product) RecordID() int { return p.ID }

// Row encodes the product as [id, name, description, price, url, created_at].
func (p Product) Row() []interface{} {
	return []interface{}{p.ID, p.Name, p.Description, p.Price, p.URL, FormatTimestamp(p.CreatedAt)}
}

func (p Product) Stamp(id int, createdAt time.Time) Record {
	p.ID = id
	p.CreatedAt = createdAt
	return p
}

// DecodeProduct builds a Product from a header-keyed products row.
func DecodeProduct(row map[string]interface{}) (Product, error) {
	var (
		p   Product
		err error
	)

	if p.ID, err = cellInt(row, "id"); err != nil {
		return Product{}, err
	}
	if p.Price, err = cellFloat(row, "price"); err != nil {
		return Product{}, err
	}
	if p.CreatedAt, err = cellTime(row, "created_at"); err != nil {
		return Product{}, err
	}
	p.Name = cellString(row, "name")
	p.Description = cellString(row, "description")
	p.URL = cellString(row, "url")

	return p, nil
}

// DefaultProducts is the demo catalog seeded into an empty products sheet.
func DefaultProducts() []Product {
	return []Product{
		{Name: "Strawberries", Description: "Juicy organic strawberries.", Price: 4.99, URL: "https://picsum.photos/id/1080/360/200"},
		{Name: "Cup of Tea", Description: "An individually-prepared tea or coffee of choice.", Price: 3.49, URL: "https://picsum.photos/id/225/360/200"},
		{Name: "Textbook", Description: "It has all the answers.", Price: 129.99, URL: "https://picsum.photos/id/24/360/200"},
	}
}
