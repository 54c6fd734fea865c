package model

import "time"

// ChatMessage direct (ReceiverID) or group (GroupID) message. Table chat_messages.
type ChatMessage struct {
	MessageID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"message_id"`
	SenderID   int        `gorm:"not null;index"                                 json:"sender_id"`
	ReceiverID *int       `gorm:"index"                                          json:"receiver_id,omitempty"`
	GroupID    *string    `gorm:"type:uuid;index"                                json:"group_id,omitempty"`
	Body       string     `gorm:"type:text;not null"                             json:"body"`
	IsRead     bool       `gorm:"not null;default:false"                         json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName maps to chat_messages
func (ChatMessage) TableName() string { return "chat_messages" }

// ChatGroup named group chat. Table chat_groups.
type ChatGroup struct {
	GroupID   string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	Name      string   `gorm:"type:varchar(100);not null"                     json:"name"`
	MemberIDs IntArray `gorm:"type:int[];not null"                            json:"member_ids"`
	BaseModel
}

// TableName maps to chat_groups
func (ChatGroup) TableName() string { return "chat_groups" }
