package dto

import "time"

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Stock       []int   `json:"stock"`
}

// ProductResponse describes catalog entry in API responses.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Stock       []int     `json:"stock"`
	Sizes       []string  `json:"sizes"`
	CreatedAt   time.Time `json:"createdAt"`
}
