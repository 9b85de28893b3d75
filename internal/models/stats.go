package models

// TopProduct is a sales aggregate over a trailing window.
type TopProduct struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SKU           *string `json:"sku"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int64   `json:"order_count"`
}

// TopProvider aggregates sold products by their provider.
type TopProvider struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Contact      *string `json:"contact"`
	Phone        *string `json:"phone"`
	ProductCount int64   `json:"product_count"`
	TotalAmount  float64 `json:"total_amount"`
	TotalItems   float64 `json:"total_items"`
}

// TopClient aggregates orders by client.
type TopClient struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	OrderCount  int64   `json:"order_count"`
	TotalAmount float64 `json:"total_amount"`
	TotalItems  float64 `json:"total_items"`
}

// ClientProduct is one product bought by a given client in the window.
type ClientProduct struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SKU           *string `json:"sku"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalSpent    float64 `json:"total_spent"`
}
