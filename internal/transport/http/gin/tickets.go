package httpgin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/kirinyoku/seatkeeper/internal/auth"
	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
)

const qrCodeSize = 256

// @Summary  Create ticket category
// @Param    party_id  path  string  true  "Party ID"
// @Param    req  body  CreateCategoryRequest  true  "payload"
// @Success  201  {object}  CategoryResponse
// @Failure  404  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "title taken"
// @Router   /api/v1/parties/{party_id}/categories [post]
func (a *api) handleCreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := a.svcs.Ticketing.CreateCategory(c.Request.Context(), c.Param("party_id"), req.Title)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCategory(*category))
}

// @Summary  List ticket categories of a party
// @Param    party_id  path  string  true  "Party ID"
// @Success  200  {array}  CategoryResponse
// @Router   /api/v1/parties/{party_id}/categories [get]
func (a *api) handlePartyCategories(c *gin.Context) {
	categories, err := a.svcs.Ticketing.PartyCategories(c.Request.Context(), c.Param("party_id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, mapAll(categories, toCategory))
}

// @Summary  Create tickets (idempotent)
// @Param    req  body  CreateTicketsRequest  true  "payload"
// @Header   201  {string}  Idempotency-Key  "echo"
// @Success  201  {array}   TicketResponse
// @Failure  400  {object}  ErrorResponse
// @Failure  404  {object}  ErrorResponse  "category or owner unknown"
// @Failure  503  {object}  ErrorResponse  "no unique codes, retry"
// @Router   /api/v1/tickets [post]
func (a *api) handleCreateTickets(c *gin.Context) {
	var req CreateTicketsRequest
	if !bindJSON(c, &req) {
		return
	}

	createIdempotent(c, a.opts.Idempotency, "tickets", func(ctx context.Context) (any, error) {
		tickets, err := a.svcs.Ticketing.CreateTickets(ctx, req.CategoryID, req.OwnerID, req.Quantity, ticketing.CreateOptions{
			OrderNumber: req.OrderNumber,
			UsedByID:    req.UsedByID,
		})
		if err != nil {
			return nil, err
		}
		return mapAll(tickets, toTicket), nil
	})
}

// @Summary  Create ticket bundle (idempotent)
// @Param    req  body  CreateBundleRequest  true  "payload"
// @Header   201  {string}  Idempotency-Key  "echo"
// @Success  201  {object}  BundleResponse
// @Failure  400  {object}  ErrorResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/bundles [post]
func (a *api) handleCreateBundle(c *gin.Context) {
	var req CreateBundleRequest
	if !bindJSON(c, &req) {
		return
	}

	createIdempotent(c, a.opts.Idempotency, "bundles", func(ctx context.Context) (any, error) {
		bundle, err := a.svcs.Ticketing.CreateBundle(ctx, req.CategoryID, req.Quantity, req.OwnerID, ticketing.CreateOptions{
			OrderNumber: req.OrderNumber,
			UsedByID:    req.UsedByID,
			Label:       req.Label,
		})
		if err != nil {
			return nil, err
		}
		return toBundle(*bundle), nil
	})
}

// @Summary  Get ticket
// @Param    id  path  string  true  "Ticket ID"
// @Success  200  {object}  TicketResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/tickets/{id} [get]
func (a *api) handleGetTicket(c *gin.Context) {
	t, ok := a.authorizedTicket(c, mayView)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toTicket(*t))
}

// @Summary  Ticket code as QR code for the check-in desk
// @Param    id  path  string  true  "Ticket ID"
// @Produce  png
// @Success  200
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/tickets/{id}/qrcode.png [get]
func (a *api) handleTicketQRCode(c *gin.Context) {
	t, ok := a.authorizedTicket(c, mayView)
	if !ok {
		return
	}

	png, err := qrcode.Encode(t.Code, qrcode.Medium, qrCodeSize)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// @Summary  Look up ticket by code
// @Param    party_id  path  string  true  "Party ID"
// @Param    code      path  string  true  "Ticket code"
// @Success  200  {object}  TicketResponse
// @Failure  400  {object}  ErrorResponse  "malformed code"
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/parties/{party_id}/tickets/by-code/{code} [get]
func (a *api) handleGetTicketByCode(c *gin.Context) {
	t, err := a.svcs.Ticketing.GetTicketByCode(c.Request.Context(), c.Param("party_id"), c.Param("code"))
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, toTicket(*t))
}

// @Summary  Get ticket bundle
// @Param    id  path  string  true  "Bundle ID"
// @Success  200  {object}  BundleResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/bundles/{id} [get]
func (a *api) handleGetBundle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := a.svcs.Ticketing.GetBundle(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}

	if p, _ := principalFrom(c); !p.IsAdmin() && b.OwnedByID != p.UserID {
		respondErr(c, ticketing.ErrBundleNotFound)
		return
	}

	c.JSON(http.StatusOK, toBundle(*b))
}

// @Summary  Revoke ticket
// @Param    id   path  string  true  "Ticket ID"
// @Param    req  body  RevokeRequest  false  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/tickets/{id}/revoke [post]
func (a *api) handleRevokeTicket(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req RevokeRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	if err := a.svcs.Ticketing.RevokeTicket(c.Request.Context(), id, initiator(c), req.Reason); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Revoke bundle with all its tickets, releasing its seat group
// @Param    id   path  string  true  "Bundle ID"
// @Param    req  body  RevokeRequest  false  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/bundles/{id}/revoke [post]
func (a *api) handleRevokeBundle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req RevokeRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	released, err := a.svcs.Ticketing.RevokeBundle(c.Request.Context(), id, initiator(c), req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}

	if released != nil {
		a.dispatch(c, *released)
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Ticket log, oldest first
// @Param    id  path  string  true  "Ticket ID"
// @Success  200  {array}  LogEntryResponse
// @Router   /api/v1/tickets/{id}/log [get]
func (a *api) handleTicketLog(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := a.svcs.Ticketing.TicketLog(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, mapAll(entries, toLogEntry))
}

type (
	appointFunc  func(svc *ticketing.Service, ctx context.Context, ticketID, userID, initiatorID uuid.UUID) error
	withdrawFunc func(svc *ticketing.Service, ctx context.Context, ticketID, initiatorID uuid.UUID) error
)

// delegation pairs a ticketing operation with who may perform it.
type delegation[F any] struct {
	run   F
	allow func(auth.Principal, domain.Ticket) bool
}

var (
	appointSeatManager = delegation[appointFunc]{(*ticketing.Service).AppointSeatManager, isOwner}
	appointUserManager = delegation[appointFunc]{(*ticketing.Service).AppointUserManager, isOwner}
	appointUser        = delegation[appointFunc]{(*ticketing.Service).AppointUser, isUserManager}

	withdrawSeatManager = delegation[withdrawFunc]{(*ticketing.Service).WithdrawSeatManager, isOwner}
	withdrawUserManager = delegation[withdrawFunc]{(*ticketing.Service).WithdrawUserManager, isOwner}
	withdrawUser        = delegation[withdrawFunc]{(*ticketing.Service).WithdrawUser, isUserManager}
)

// @Summary  Appoint seat manager, user manager or user
// @Param    id   path  string  true  "Ticket ID"
// @Param    req  body  AppointRequest  true  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse  "ticket revoked, user checked in or suspended"
// @Router   /api/v1/tickets/{id}/seat-manager [put]
// @Router   /api/v1/tickets/{id}/user-manager [put]
// @Router   /api/v1/tickets/{id}/user [put]
func (a *api) handleAppoint(d delegation[appointFunc]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AppointRequest
		if !bindJSON(c, &req) {
			return
		}

		t, ok := a.authorizedTicket(c, d.allow)
		if !ok {
			return
		}

		if err := d.run(a.svcs.Ticketing, c.Request.Context(), t.ID, req.UserID, initiator(c)); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Withdraw seat manager, user manager or user
// @Param    id  path  string  true  "Ticket ID"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/tickets/{id}/seat-manager [delete]
// @Router   /api/v1/tickets/{id}/user-manager [delete]
// @Router   /api/v1/tickets/{id}/user [delete]
func (a *api) handleWithdraw(d delegation[withdrawFunc]) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := a.authorizedTicket(c, d.allow)
		if !ok {
			return
		}

		if err := d.run(a.svcs.Ticketing, c.Request.Context(), t.ID, initiator(c)); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// authorizedTicket loads the ticket named by the id parameter and checks
// the caller against allow. Admins pass every check. Tickets the caller may
// not act on are reported as missing.
func (a *api) authorizedTicket(
	c *gin.Context,
	allow func(auth.Principal, domain.Ticket) bool,
) (*domain.Ticket, bool) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil, false
	}

	t, err := a.svcs.Ticketing.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return nil, false
	}

	if p, _ := principalFrom(c); !p.IsAdmin() && !allow(p, *t) {
		respondErr(c, ticketing.ErrTicketNotFound)
		return nil, false
	}

	return t, true
}

func isOwner(p auth.Principal, t domain.Ticket) bool {
	return t.OwnedByID == p.UserID
}

func isSeatManager(p auth.Principal, t domain.Ticket) bool {
	return t.IsSeatManagedBy(p.UserID)
}

func isUserManager(p auth.Principal, t domain.Ticket) bool {
	return t.IsUserManagedBy(p.UserID)
}

func mayView(p auth.Principal, t domain.Ticket) bool {
	return isOwner(p, t) || isSeatManager(p, t) || isUserManager(p, t) ||
		(t.UsedByID != nil && *t.UsedByID == p.UserID)
}
