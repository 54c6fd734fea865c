package service

import (
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/repository"
	"github.com/sammyTGR/tgr-sub005/pkg/fastbound"
	"github.com/sammyTGR/tgr-sub005/pkg/inventory"
	"github.com/sammyTGR/tgr-sub005/pkg/jwt"
)

// Deps optional collaborators. Nil fields fall back to local behavior
// (no token blacklist, in-process cache, local realtime delivery) or to
// partner clients built from cfg.
type Deps struct {
	Tokens    TokenStore
	Cache     JSONCache
	Publisher realtime.Publisher
	Inventory InventorySource
	FastBound AcquisitionGateway
}

// Service aggregates every service.
type Service struct {
	Auth         AuthService
	Employee     EmployeeService
	StoreSetting StoreSettingService
	Schedule     ScheduleService
	TimeOff      TimeOffService
	BreakRoom    BreakRoomService
	Audit        AuditService
	Sales        SalesService
	Order        OrderService
	Chat         ChatService
	Waiver       WaiverService
	Holiday      HolidayService
	Dros         DrosService
	Inventory    InventoryService
	Acquisition  AcquisitionService
	Export       ExportService
}

// NewService wires every service.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	deps Deps,
	logger *zap.Logger,
) *Service {
	pub := deps.Publisher
	if pub == nil {
		pub = realtime.Nop{}
	}
	if deps.Inventory == nil {
		deps.Inventory = inventory.NewClient(&cfg.Inventory)
	}
	if deps.FastBound == nil {
		deps.FastBound = fastbound.NewClient(&cfg.FastBound)
	}

	audit := NewAuditService(repo, pub, logger)
	schedule := NewScheduleService(repo, pub, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, deps.Tokens, logger),
		Employee:     NewEmployeeService(repo, logger),
		StoreSetting: NewStoreSettingService(repo, logger),
		Schedule:     schedule,
		TimeOff:      NewTimeOffService(repo, pub, logger),
		BreakRoom:    NewBreakRoomService(repo, pub, logger),
		Audit:        audit,
		Sales:        NewSalesService(repo, logger),
		Order:        NewOrderService(repo, pub, logger),
		Chat:         NewChatService(repo, pub, logger),
		Waiver:       NewWaiverService(repo, pub, logger),
		Holiday:      NewHolidayService(repo, logger),
		Dros:         NewDrosService(repo, pub, logger),
		Inventory:    NewInventoryService(deps.Inventory, deps.Cache, cfg.Inventory.CacheTTL, logger),
		Acquisition:  NewAcquisitionService(repo, deps.FastBound, logger),
		Export:       NewExportService(audit, schedule, logger),
	}
}
