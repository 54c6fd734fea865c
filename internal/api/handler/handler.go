package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/internal/realtime"
	"github.com/sammyTGR/tgr-sub005/internal/service"
	"github.com/sammyTGR/tgr-sub005/pkg/jwt"
	"github.com/sammyTGR/tgr-sub005/pkg/response"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth         *AuthHandler
	Employee     *EmployeeHandler
	StoreSetting *StoreSettingHandler
	Schedule     *ScheduleHandler
	TimeOff      *TimeOffHandler
	BreakRoom    *BreakRoomHandler
	Audit        *AuditHandler
	Sales        *SalesHandler
	Order        *OrderHandler
	Chat         *ChatHandler
	Waiver       *WaiverHandler
	Holiday      *HolidayHandler
	Dros         *DrosHandler
	Inventory    *InventoryHandler
	Acquisition  *AcquisitionHandler
	Export       *ExportHandler
	Realtime     *RealtimeHandler
}

// NewHandler wires every handler.
func NewHandler(cfg *config.Config, svc *service.Service, hub *realtime.Hub, jwtMgr *jwt.Manager) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, &cfg.Auth),
		Employee:     NewEmployeeHandler(svc.Employee),
		StoreSetting: NewStoreSettingHandler(svc.StoreSetting),
		Schedule:     NewScheduleHandler(svc.Schedule),
		TimeOff:      NewTimeOffHandler(svc.TimeOff),
		BreakRoom:    NewBreakRoomHandler(svc.BreakRoom),
		Audit:        NewAuditHandler(svc.Audit),
		Sales:        NewSalesHandler(svc.Sales),
		Order:        NewOrderHandler(svc.Order),
		Chat:         NewChatHandler(svc.Chat),
		Waiver:       NewWaiverHandler(svc.Waiver),
		Holiday:      NewHolidayHandler(svc.Holiday),
		Dros:         NewDrosHandler(svc.Dros),
		Inventory:    NewInventoryHandler(svc.Inventory),
		Acquisition:  NewAcquisitionHandler(svc.Acquisition),
		Export:       NewExportHandler(svc.Export),
		Realtime:     NewRealtimeHandler(hub, jwtMgr, cfg.Server.CORS.AllowOrigins),
	}
}

// writeDateError maps the shared date parsing errors; false when err is not one.
func writeDateError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10006, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 10007, "end date must not be before start date")
	default:
		return false
	}
	return true
}
