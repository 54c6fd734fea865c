package dto

// InventorySearchRequest partner search
type InventorySearchRequest struct {
	Q     string `form:"q"     binding:"required,min=2,max=100"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
