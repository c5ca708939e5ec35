package httpgin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

// @Summary  Seat reservation preconditions, earliest first
// @Param    party_id  path  string  true  "Party ID"
// @Success  200  {array}  domain.SeatReservationPrecondition
// @Success  304
// @Router   /api/v1/parties/{party_id}/preconditions [get]
func (a *api) handlePreconditions(c *gin.Context) {
	preconditions, err := a.svcs.Reservation.Preconditions(c.Request.Context(), c.Param("party_id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	writeJSONWithETag(c, preconditions, "public, max-age=60")
}

// @Summary  Create seat reservation precondition
// @Param    party_id  path  string  true  "Party ID"
// @Param    req  body  CreatePreconditionRequest  true  "payload"
// @Success  201  {object}  domain.SeatReservationPrecondition
// @Failure  400  {object}  ErrorResponse
// @Failure  409  {object}  ErrorResponse  "identical precondition exists"
// @Router   /api/v1/parties/{party_id}/preconditions [post]
func (a *api) handleCreatePrecondition(c *gin.Context) {
	var req CreatePreconditionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := a.svcs.Reservation.CreatePrecondition(
		c.Request.Context(),
		c.Param("party_id"),
		req.AtEarliest,
		req.MinimumTicketQuantity,
	)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary  Delete seat reservation precondition
// @Param    party_id  path  string  true  "Party ID"
// @Param    id        path  string  true  "Precondition ID"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/parties/{party_id}/preconditions/{id} [delete]
func (a *api) handleDeletePrecondition(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := a.svcs.Reservation.DeletePrecondition(c.Request.Context(), c.Param("party_id"), id); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Whether the caller may reserve seats now
// @Param    party_id         path   string  true   "Party ID"
// @Param    ticket_quantity  query  int     false  "also report whether reservation is open for this many tickets"
// @Success  200  {object}  ReservationStatusResponse
// @Router   /api/v1/parties/{party_id}/reservation-status [get]
func (a *api) handleReservationStatus(c *gin.Context) {
	ctx := c.Request.Context()
	partyID := c.Param("party_id")

	var resp ReservationStatusResponse

	if raw, ok := c.GetQuery("ticket_quantity"); ok {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 {
			badRequest(c, "invalid ticket_quantity")
			return
		}

		open, err := a.svcs.Reservation.IsReservationOpen(ctx, partyID, qty)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp.Open = &open
	}

	may, err := a.svcs.Reservation.MayUserReserve(ctx, partyID, initiator(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.MayReserve = may

	c.JSON(http.StatusOK, resp)
}

// mayReserve refuses seat reservations of non-admins until the party's
// preconditions are met for the tickets the caller manages seats for.
func (a *api) mayReserve(c *gin.Context, partyID string) bool {
	p, _ := principalFrom(c)
	if p.IsAdmin() {
		return true
	}

	ok, err := a.svcs.Reservation.MayUserReserve(c.Request.Context(), partyID, p.UserID)
	if err != nil {
		respondErr(c, err)
		return false
	}

	if !ok {
		respondErr(c, domain.SeatReservationClosedError{PartyID: partyID})
		return false
	}

	return true
}
