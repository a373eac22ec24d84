package products

import "time"

// Product is a book in the catalog. Price is stored in rupees; orders
// convert it to paise at purchase time.
type Product struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Author    string    `json:"author" bson:"author"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type NewProduct struct {
	Title    string  `json:"title" validate:"required"`
	Author   string  `json:"author" validate:"required"`
	ImageURL string  `json:"image_url" validate:"required,url"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}
