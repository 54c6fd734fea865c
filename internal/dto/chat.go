package dto

// SendMessageRequest exactly one of receiver_id or group_id
type SendMessageRequest struct {
	ReceiverID *int    `json:"receiver_id" binding:"omitempty,min=1"`
	GroupID    *string `json:"group_id"    binding:"omitempty,uuid"`
	Body       string  `json:"body"        binding:"required,max=4000"`
}

// CreateChatGroupRequest the creator is always a member
type CreateChatGroupRequest struct {
	Name      string `json:"name"       binding:"required,max=100"`
	MemberIDs []int  `json:"member_ids" binding:"required,min=1,max=100,dive,min=1"`
}

// MarkReadRequest marks everything from sender_id as read
type MarkReadRequest struct {
	SenderID int `json:"sender_id" binding:"required,min=1"`
}

// HistoryRequest newest-first page of messages
type HistoryRequest struct {
	Limit  int    `form:"limit"  binding:"omitempty,min=1,max=200"`
	Before string `form:"before" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// MessageResponse one message
type MessageResponse struct {
	MessageID  string  `json:"message_id"`
	SenderID   int     `json:"sender_id"`
	ReceiverID *int    `json:"receiver_id,omitempty"`
	GroupID    *string `json:"group_id,omitempty"`
	Body       string  `json:"body"`
	IsRead     bool    `json:"is_read"`
	CreatedAt  string  `json:"created_at"`
}

// ChatGroupResponse one group
type ChatGroupResponse struct {
	GroupID   string `json:"group_id"`
	Name      string `json:"name"`
	MemberIDs []int  `json:"member_ids"`
}

// UnreadCountResponse badge count per sender
type UnreadCountResponse struct {
	SenderID int   `json:"sender_id"`
	Count    int64 `json:"count"`
}
