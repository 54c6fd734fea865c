package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// UnreadCount unread direct messages from one sender
type UnreadCount struct {
	SenderID int
	Count    int64
}

// ChatRepository chat messages and groups
type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *model.ChatMessage) error
	// Conversation direct messages between a and b, newest first
	Conversation(ctx context.Context, a, b int, before *time.Time, limit int) ([]model.ChatMessage, error)
	GroupHistory(ctx context.Context, groupID string, before *time.Time, limit int) ([]model.ChatMessage, error)
	// MarkRead marks direct messages from sender to receiver read
	MarkRead(ctx context.Context, receiverID, senderID int) (int64, error)
	UnreadCounts(ctx context.Context, receiverID int) ([]UnreadCount, error)

	CreateGroup(ctx context.Context, group *model.ChatGroup) error
	GetGroup(ctx context.Context, id string) (*model.ChatGroup, error)
	ListGroupsForMember(ctx context.Context, employeeID int) ([]model.ChatGroup, error)
}

type chatRepo struct {
	db *gorm.DB
}

// NewChatRepo creates a ChatRepository.
func NewChatRepo(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateMessage(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepo) Conversation(ctx context.Context, a, b int, before *time.Time, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	db := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a)
	if before != nil {
		db = db.Where("created_at < ?", *before)
	}
	err := db.Order("created_at DESC").Limit(limit).Find(&msgs).Error
	return msgs, err
}

func (r *chatRepo) GroupHistory(ctx context.Context, groupID string, before *time.Time, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	db := r.db.WithContext(ctx).Where("group_id = ?", groupID)
	if before != nil {
		db = db.Where("created_at < ?", *before)
	}
	err := db.Order("created_at DESC").Limit(limit).Find(&msgs).Error
	return msgs, err
}

func (r *chatRepo) MarkRead(ctx context.Context, receiverID, senderID int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *chatRepo) UnreadCounts(ctx context.Context, receiverID int) ([]UnreadCount, error) {
	var counts []UnreadCount
	err := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Select("sender_id, COUNT(*) AS count").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Group("sender_id").
		Order("sender_id ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *chatRepo) CreateGroup(ctx context.Context, group *model.ChatGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *chatRepo) GetGroup(ctx context.Context, id string) (*model.ChatGroup, error) {
	var g model.ChatGroup
	err := r.db.WithContext(ctx).Where("group_id = ?", id).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *chatRepo) ListGroupsForMember(ctx context.Context, employeeID int) ([]model.ChatGroup, error) {
	var groups []model.ChatGroup
	err := r.db.WithContext(ctx).
		Where("? = ANY(member_ids)", employeeID).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}
