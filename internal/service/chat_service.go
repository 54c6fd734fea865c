package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
)

var (
	ErrMessageTarget       = errors.New("exactly one of receiver_id or group_id is required")
	ErrMessageEmpty        = errors.New("message body must not be empty")
	ErrChatGroupNotFound   = errors.New("chat group not found")
	ErrNotChatGroupMember  = errors.New("not a member of this chat group")
	ErrChatMemberNotFound  = errors.New("chat member not found")
	ErrInvalidHistoryQuery = errors.New("before must be an RFC3339 timestamp")
)

const (
	defaultHistoryLimit = 50
	chatTable           = "chat_messages"
)

// ChatService direct and group messaging
type ChatService interface {
	Send(ctx context.Context, senderID int, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	// Conversation newest first
	Conversation(ctx context.Context, me, other int, req *dto.HistoryRequest) ([]dto.MessageResponse, error)
	GroupHistory(ctx context.Context, me int, groupID string, req *dto.HistoryRequest) ([]dto.MessageResponse, error)
	MarkRead(ctx context.Context, me int, req *dto.MarkReadRequest) (int64, error)
	UnreadCounts(ctx context.Context, me int) ([]dto.UnreadCountResponse, error)

	CreateGroup(ctx context.Context, me int, req *dto.CreateChatGroupRequest) (*dto.ChatGroupResponse, error)
	ListGroups(ctx context.Context, me int) ([]dto.ChatGroupResponse, error)
}

type chatService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
}

// NewChatService creates a ChatService.
func NewChatService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) ChatService {
	return &chatService{repo: repo, pub: pub, logger: logger}
}

// ────────────────────── Send ──────────────────────

func (s *chatService) Send(ctx context.Context, senderID int, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if (req.ReceiverID == nil) == (req.GroupID == nil) {
		return nil, ErrMessageTarget
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrMessageEmpty
	}

	// recipients get the event on their private topic
	var recipients []int
	if req.ReceiverID != nil {
		if _, err := s.repo.Employee.GetByID(ctx, *req.ReceiverID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrChatMemberNotFound
			}
			return nil, err
		}
		recipients = []int{*req.ReceiverID}
	} else {
		group, err := s.memberGroup(ctx, senderID, *req.GroupID)
		if err != nil {
			return nil, err
		}
		for _, id := range group.MemberIDs {
			if id != senderID {
				recipients = append(recipients, id)
			}
		}
	}

	msg := &model.ChatMessage{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		GroupID:    req.GroupID,
		Body:       body,
	}
	if err := s.repo.Chat.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("create chat message failed", zap.Int("sender_id", senderID), zap.Error(err))
		return nil, err
	}

	resp := toMessageResponse(msg)
	topics := make([]string, 0, len(recipients)+1)
	topics = append(topics, realtime.EmployeeTopic(senderID))
	for _, id := range recipients {
		topics = append(topics, realtime.EmployeeTopic(id))
	}
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: chatTable, Record: resp}, topics...)
	return &resp, nil
}

// ────────────────────── history ──────────────────────

func (s *chatService) Conversation(ctx context.Context, me, other int, req *dto.HistoryRequest) ([]dto.MessageResponse, error) {
	before, limit, err := historyWindow(req)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repo.Chat.Conversation(ctx, me, other, before, limit)
	if err != nil {
		s.logger.Error("load conversation failed", zap.Int("me", me), zap.Int("other", other), zap.Error(err))
		return nil, err
	}
	return toMessageResponses(msgs), nil
}

func (s *chatService) GroupHistory(ctx context.Context, me int, groupID string, req *dto.HistoryRequest) ([]dto.MessageResponse, error) {
	if _, err := s.memberGroup(ctx, me, groupID); err != nil {
		return nil, err
	}
	before, limit, err := historyWindow(req)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repo.Chat.GroupHistory(ctx, groupID, before, limit)
	if err != nil {
		s.logger.Error("load group history failed", zap.String("group_id", groupID), zap.Error(err))
		return nil, err
	}
	return toMessageResponses(msgs), nil
}

// ────────────────────── read state ──────────────────────

func (s *chatService) MarkRead(ctx context.Context, me int, req *dto.MarkReadRequest) (int64, error) {
	n, err := s.repo.Chat.MarkRead(ctx, me, req.SenderID)
	if err != nil {
		s.logger.Error("mark messages read failed", zap.Int("receiver_id", me), zap.Error(err))
		return 0, err
	}
	if n > 0 {
		s.pub.Publish(ctx, realtime.Event{
			Type:   realtime.Update,
			Table:  chatTable,
			Record: map[string]interface{}{"receiver_id": me, "sender_id": req.SenderID, "is_read": true, "count": n},
		}, realtime.EmployeeTopic(req.SenderID), realtime.EmployeeTopic(me))
	}
	return n, nil
}

func (s *chatService) UnreadCounts(ctx context.Context, me int) ([]dto.UnreadCountResponse, error) {
	counts, err := s.repo.Chat.UnreadCounts(ctx, me)
	if err != nil {
		s.logger.Error("count unread messages failed", zap.Int("receiver_id", me), zap.Error(err))
		return nil, err
	}
	list := make([]dto.UnreadCountResponse, 0, len(counts))
	for _, c := range counts {
		list = append(list, dto.UnreadCountResponse{SenderID: c.SenderID, Count: c.Count})
	}
	return list, nil
}

// ────────────────────── groups ──────────────────────

func (s *chatService) CreateGroup(ctx context.Context, me int, req *dto.CreateChatGroupRequest) (*dto.ChatGroupResponse, error) {
	members := map[int]bool{me: true}
	for _, id := range req.MemberIDs {
		members[id] = true
	}
	ids := make([]int, 0, len(members))
	for id := range members {
		if id != me {
			if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrChatMemberNotFound
				}
				return nil, err
			}
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	group := &model.ChatGroup{
		Name:      strings.TrimSpace(req.Name),
		MemberIDs: model.IntArray(ids),
		BaseModel: model.BaseModel{CreatedBy: &me, UpdatedBy: &me},
	}
	if err := s.repo.Chat.CreateGroup(ctx, group); err != nil {
		s.logger.Error("create chat group failed", zap.Error(err))
		return nil, err
	}

	resp := toChatGroupResponse(group)
	topics := make([]string, 0, len(ids))
	for _, id := range ids {
		topics = append(topics, realtime.EmployeeTopic(id))
	}
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "chat_groups", Record: resp}, topics...)
	return &resp, nil
}

func (s *chatService) ListGroups(ctx context.Context, me int) ([]dto.ChatGroupResponse, error) {
	groups, err := s.repo.Chat.ListGroupsForMember(ctx, me)
	if err != nil {
		s.logger.Error("list chat groups failed", zap.Int("employee_id", me), zap.Error(err))
		return nil, err
	}
	list := make([]dto.ChatGroupResponse, 0, len(groups))
	for i := range groups {
		list = append(list, toChatGroupResponse(&groups[i]))
	}
	return list, nil
}

func (s *chatService) memberGroup(ctx context.Context, me int, groupID string) (*model.ChatGroup, error) {
	group, err := s.repo.Chat.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatGroupNotFound
		}
		s.logger.Error("query chat group failed", zap.String("group_id", groupID), zap.Error(err))
		return nil, err
	}
	if !group.MemberIDs.Contains(me) {
		return nil, ErrNotChatGroupMember
	}
	return group, nil
}

func historyWindow(req *dto.HistoryRequest) (*time.Time, int, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if req.Before == "" {
		return nil, limit, nil
	}
	t, err := time.Parse(time.RFC3339, req.Before)
	if err != nil {
		return nil, 0, ErrInvalidHistoryQuery
	}
	return &t, limit, nil
}

// ── mapping ──

func toMessageResponse(m *model.ChatMessage) dto.MessageResponse {
	return dto.MessageResponse{
		MessageID:  m.MessageID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		GroupID:    m.GroupID,
		Body:       m.Body,
		IsRead:     m.IsRead,
		CreatedAt:  formatTimestamp(m.CreatedAt),
	}
}

func toMessageResponses(msgs []model.ChatMessage) []dto.MessageResponse {
	list := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		list = append(list, toMessageResponse(&msgs[i]))
	}
	return list
}

func toChatGroupResponse(g *model.ChatGroup) dto.ChatGroupResponse {
	ids := []int(g.MemberIDs)
	if ids == nil {
		ids = []int{}
	}
	return dto.ChatGroupResponse{
		GroupID:   g.GroupID,
		Name:      g.Name,
		MemberIDs: ids,
	}
}
