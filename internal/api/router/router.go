package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/internal/api/handler"
	"github.com/sammyTGR/tgr-sub005/internal/api/middleware"
	"github.com/sammyTGR/tgr-sub005/internal/model"
	"github.com/sammyTGR/tgr-sub005/pkg/jwt"
	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

// Options optional router collaborators; nil fields degrade to local behavior.
type Options struct {
	Tokens middleware.TokenChecker
	Rate   middleware.RateChecker
}

// Setup builds the gin engine.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, opts Options, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/realtime", h.Realtime.Connect)

	admin := middleware.RoleAuth(model.RoleAdmin, model.RoleSuperAdmin)
	auditors := middleware.RoleAuth(model.RoleAuditor, model.RoleAdmin, model.RoleSuperAdmin)
	limited := middleware.RateLimit(opts.Rate, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	v1 := r.Group("/api/v1")
	{
		// public
		auth := v1.Group("/auth")
		{
			auth.POST("/login", limited, h.Auth.Login)
			auth.POST("/refresh", limited, h.Auth.RefreshToken)
		}
		v1.POST("/waivers", limited, h.Waiver.Create)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, opts.Tokens, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			employees := authorized.Group("/employees")
			{
				employees.GET("", h.Employee.List)
				employees.GET("/:id", h.Employee.Get)
				employees.POST("", admin, h.Employee.Create)
				employees.PUT("/:id", admin, h.Employee.Update)
				employees.DELETE("/:id", admin, h.Employee.Deactivate)
				employees.GET("/:id/reference-schedule", h.Schedule.ListReference)
				employees.PUT("/:id/reference-schedule", admin, h.Schedule.UpsertReference)
			}

			settings := authorized.Group("/settings")
			{
				settings.GET("", h.StoreSetting.Get)
				settings.PUT("", admin, h.StoreSetting.Update)
			}

			schedules := authorized.Group("/schedules")
			{
				schedules.GET("/calendar", h.Schedule.Calendar)
				schedules.POST("/generate", admin, h.Schedule.Generate)
			}

			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Schedule.ListShifts)
				shifts.GET("/me", h.Schedule.MyShifts)
				shifts.POST("", admin, h.Schedule.CreateShift)
				shifts.PUT("/:id", admin, h.Schedule.UpdateShift)
				shifts.POST("/:id/status", admin, h.Schedule.MarkStatus)
			}

			timeOff := authorized.Group("/time-off")
			{
				timeOff.POST("", h.TimeOff.Submit)
				timeOff.GET("/me", h.TimeOff.Mine)
				timeOff.GET("", admin, h.TimeOff.List)
				timeOff.POST("/:id/approve", admin, h.TimeOff.Approve)
				timeOff.POST("/:id/deny", admin, h.TimeOff.Deny)
			}

			breakRoom := authorized.Group("/break-room")
			{
				breakRoom.GET("", h.BreakRoom.List)
				breakRoom.POST("/assign", admin, h.BreakRoom.Assign)
				// assignee or admin, checked in the service
				breakRoom.POST("/:id/complete", h.BreakRoom.Complete)
			}

			audits := authorized.Group("/audits", auditors)
			{
				audits.GET("", h.Audit.List)
				audits.POST("", h.Audit.Create)
				audits.DELETE("/:id", h.Audit.Delete)
				audits.GET("/rules", h.Audit.ListRules)
				audits.PUT("/rules", admin, h.Audit.UpsertRule)
				audits.GET("/summary", h.Audit.Summary)
			}

			sales := authorized.Group("/sales", auditors)
			{
				sales.GET("", h.Sales.List)
				sales.POST("/import", h.Sales.Import)
			}

			orders := authorized.Group("/orders")
			{
				orders.GET("", h.Order.List)
				orders.POST("", h.Order.Create)
				orders.GET("/:id", h.Order.Get)
				orders.PUT("/:id/status", h.Order.UpdateStatus)
			}

			chat := authorized.Group("/chat")
			{
				chat.POST("/messages", h.Chat.Send)
				chat.GET("/direct/:id", h.Chat.Conversation)
				chat.POST("/read", h.Chat.MarkRead)
				chat.GET("/unread", h.Chat.UnreadCounts)
				chat.GET("/groups", h.Chat.ListGroups)
				chat.POST("/groups", h.Chat.CreateGroup)
				chat.GET("/groups/:id/messages", h.Chat.GroupHistory)
			}

			waivers := authorized.Group("/waivers")
			{
				waivers.GET("", h.Waiver.List)
				waivers.POST("/:id/check-out", h.Waiver.CheckOut)
			}

			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.List)
				holidays.POST("", admin, h.Holiday.Create)
				holidays.DELETE("/:id", admin, h.Holiday.Delete)
				holidays.POST("/import", admin, h.Holiday.Import)
			}

			dros := authorized.Group("/dros")
			{
				dros.GET("", h.Dros.List)
				dros.POST("", h.Dros.Create)
				dros.GET("/:id", h.Dros.Get)
				dros.POST("/:id/release", h.Dros.Release)
				dros.POST("/:id/cancel", h.Dros.Cancel)
			}

			inventory := authorized.Group("/inventory")
			{
				inventory.GET("/search", h.Inventory.Search)
				inventory.GET("/items/:sku", h.Inventory.GetBySKU)
			}

			acquisitions := authorized.Group("/acquisitions", admin)
			{
				acquisitions.GET("", h.Acquisition.List)
				acquisitions.POST("", h.Acquisition.Acquire)
			}

			export := authorized.Group("/export")
			{
				export.GET("/audit-summary", auditors, h.Export.AuditSummary)
				export.GET("/schedule", h.Export.WeeklySchedule)
			}
		}
	}

	return r
}
