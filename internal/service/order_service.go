package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	pkgerrors "github.com/sammyTGR/tgr-sub005/pkg/errors"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderFinal        = errors.New("completed or cancelled orders cannot change status")
	ErrOrderVersionStale = errors.New("order was modified by someone else, reload and retry")
)

// OrderService customer special orders
type OrderService interface {
	Create(ctx context.Context, req *dto.CreateOrderRequest, callerID int) (*dto.OrderResponse, error)
	List(ctx context.Context, req *dto.OrderListRequest) ([]dto.OrderResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest, callerID int) (*dto.OrderResponse, error)
}

type orderService struct {
	repo   *repository.Repository
	pub    realtime.Publisher
	logger *zap.Logger
	now    func() time.Time
}

// NewOrderService creates an OrderService.
func NewOrderService(repo *repository.Repository, pub realtime.Publisher, logger *zap.Logger) OrderService {
	return &orderService{repo: repo, pub: pub, logger: logger, now: time.Now}
}

func (s *orderService) Create(ctx context.Context, req *dto.CreateOrderRequest, callerID int) (*dto.OrderResponse, error) {
	order := &model.SpecialOrder{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Item:          req.Item,
		Manufacturer:  req.Manufacturer,
		Details:       req.Details,
		TakenBy:       callerID,
		Status:        model.OrderPending,
	}
	order.CreatedBy = &callerID
	order.UpdatedBy = &callerID
	order.Version = 1

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.logger.Error("create order failed", zap.Error(err))
		return nil, err
	}

	resp := toOrderResponse(order)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Insert, Table: "orders", Record: resp})
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, req *dto.OrderListRequest) ([]dto.OrderResponse, int64, error) {
	orders, total, err := s.repo.Order.List(ctx, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list orders failed", zap.Error(err))
		return nil, 0, err
	}
	list := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		list = append(list, toOrderResponse(&orders[i]))
	}
	return list, total, nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest, callerID int) (*dto.OrderResponse, error) {
	order, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderCompleted || order.Status == model.OrderCancelled {
		return nil, ErrOrderFinal
	}
	if req.Version != order.Version {
		return nil, ErrOrderVersionStale
	}
	old := toOrderResponse(order)

	order.Status = req.Status
	if req.Status == model.OrderContacted && order.ContactedAt == nil {
		now := s.now()
		order.ContactedAt = &now
	}
	order.UpdatedBy = &callerID

	if err := s.repo.Order.UpdateStatus(ctx, order); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrOrderVersionStale
		}
		s.logger.Error("update order status failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}

	resp := toOrderResponse(order)
	s.pub.Publish(ctx, realtime.Event{Type: realtime.Update, Table: "orders", Record: resp, OldRecord: old},
		realtime.EmployeeTopic(order.TakenBy))
	return &resp, nil
}

func (s *orderService) get(ctx context.Context, id string) (*model.SpecialOrder, error) {
	order, err := s.repo.Order.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		s.logger.Error("query order failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return order, nil
}

func toOrderResponse(o *model.SpecialOrder) dto.OrderResponse {
	resp := dto.OrderResponse{
		OrderID:       o.OrderID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerEmail: o.CustomerEmail,
		Item:          o.Item,
		Manufacturer:  o.Manufacturer,
		Details:       o.Details,
		TakenBy:       o.TakenBy,
		Status:        o.Status,
		ContactedAt:   formatTimestampPtr(o.ContactedAt),
		Version:       o.Version,
		CreatedAt:     formatTimestamp(o.CreatedAt),
	}
	if o.Employee != nil {
		resp.TakenByName = o.Employee.FullName()
	}
	return resp
}
