package dto

// CreateOrderRequest customer special order
type CreateOrderRequest struct {
	CustomerName  string `json:"customer_name"  binding:"required,max=100"`
	CustomerPhone string `json:"customer_phone" binding:"omitempty,max=30"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	Item          string `json:"item"           binding:"required,max=255"`
	Manufacturer  string `json:"manufacturer"   binding:"omitempty,max=100"`
	Details       string `json:"details"        binding:"omitempty,max=2000"`
}

// OrderListRequest list filters
type OrderListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending contacted ordered arrived completed cancelled"`
}

// UpdateOrderStatusRequest move an order through its lifecycle
type UpdateOrderStatusRequest struct {
	Status  string `json:"status"  binding:"required,oneof=pending contacted ordered arrived completed cancelled"`
	Version int    `json:"version" binding:"required,min=1"`
}

// OrderResponse one order
type OrderResponse struct {
	OrderID       string `json:"order_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Item          string `json:"item"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	Details       string `json:"details,omitempty"`
	TakenBy       int    `json:"taken_by"`
	TakenByName   string `json:"taken_by_name,omitempty"`
	Status        string `json:"status"`
	ContactedAt   string `json:"contacted_at,omitempty"`
	Version       int    `json:"version"`
	CreatedAt     string `json:"created_at"`
}
