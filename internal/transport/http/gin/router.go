package httpgin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/service"
)

// EventDispatcher publishes the events an operation returned once the
// operation has been committed.
type EventDispatcher interface {
	Dispatch(ctx context.Context, evs ...domain.Event)
}

type Options struct {
	JWTSecret   []byte
	Events      EventDispatcher
	Idempotency IdempotencyStore
	Limiter     RateLimiter
}

type api struct {
	svcs   *service.Services
	opts   Options
	logger *slog.Logger
}

func NewRouter(
	svcs *service.Services,
	opts Options,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	a := &api{svcs: svcs, opts: opts, logger: logger}

	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1", AuthMiddleware(opts.JWTSecret))
	limited := RateLimitMiddleware(opts.Limiter, logger)

	// Ticket holders
	{
		v1.GET("/tickets/:id", a.handleGetTicket)
		v1.GET("/tickets/:id/qrcode.png", a.handleTicketQRCode)
		v1.GET("/bundles/:id", a.handleGetBundle)

		v1.PUT("/tickets/:id/seat", limited, a.handleOccupySeat)
		v1.DELETE("/tickets/:id/seat", a.handleReleaseSeat)

		v1.PUT("/tickets/:id/seat-manager", a.handleAppoint(appointSeatManager))
		v1.DELETE("/tickets/:id/seat-manager", a.handleWithdraw(withdrawSeatManager))
		v1.PUT("/tickets/:id/user-manager", a.handleAppoint(appointUserManager))
		v1.DELETE("/tickets/:id/user-manager", a.handleWithdraw(withdrawUserManager))
		v1.PUT("/tickets/:id/user", a.handleAppoint(appointUser))
		v1.DELETE("/tickets/:id/user", a.handleWithdraw(withdrawUser))

		v1.GET("/areas/:id/seats", a.handleAreaSeats)
		v1.GET("/seats/:id", a.handleGetSeat)

		v1.GET("/parties/:party_id/groups", a.handlePartyGroups)
		v1.GET("/groups/:id", a.handleGetGroup)
		v1.POST("/parties/:party_id/groups/:id/occupy", limited, a.handleOccupyGroup)
		v1.POST("/parties/:party_id/groups/:id/switch", limited, a.handleSwitchGroup)

		v1.GET("/parties/:party_id/preconditions", a.handlePreconditions)
		v1.GET("/parties/:party_id/reservation-status", a.handleReservationStatus)
	}

	// Organizers
	admin := v1.Group("", RequireAdmin())
	{
		admin.POST("/parties/:party_id/categories", a.handleCreateCategory)
		admin.GET("/parties/:party_id/categories", a.handlePartyCategories)
		admin.GET("/parties/:party_id/tickets/by-code/:code", a.handleGetTicketByCode)

		admin.POST("/tickets", a.handleCreateTickets)
		admin.POST("/bundles", a.handleCreateBundle)
		admin.POST("/tickets/:id/revoke", a.handleRevokeTicket)
		admin.POST("/bundles/:id/revoke", a.handleRevokeBundle)
		admin.GET("/tickets/:id/log", a.handleTicketLog)

		admin.POST("/parties/:party_id/areas", a.handleCreateArea)
		admin.POST("/areas/:id/seats", a.handleCreateSeat)
		admin.DELETE("/seats/:id", a.handleDeleteSeat)
		admin.POST("/parties/:party_id/groups", a.handleCreateGroup)
		admin.DELETE("/groups/:id", a.handleDeleteGroup)
		admin.POST("/parties/:party_id/groups/:id/release", a.handleReleaseGroup)

		admin.POST("/parties/:party_id/preconditions", a.handleCreatePrecondition)
		admin.DELETE("/parties/:party_id/preconditions/:id", a.handleDeletePrecondition)

		admin.POST("/parties/:party_id/check-ins", limited, a.handleCheckIn)
		admin.DELETE("/tickets/:id/check-in", a.handleRevertCheckIn)
		admin.GET("/tickets/:id/check-ins", a.handleCheckIns)
	}

	return r
}

// dispatch hands events to the dispatcher. Publishing continues even if the
// client has gone away.
func (a *api) dispatch(c *gin.Context, evs ...domain.Event) {
	if a.opts.Events == nil || len(evs) == 0 {
		return
	}
	a.opts.Events.Dispatch(context.WithoutCancel(c.Request.Context()), evs...)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, err.Error())
		return false
	}
	return true
}
