package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

// @Summary  Check in a ticket's user at the desk
// @Description  The ticket is identified by ticket_id or by its code.
// @Param    party_id  path  string  true  "Party ID"
// @Param    req  body  CheckInRequest  true  "payload"
// @Success  201  {object}  domain.TicketCheckedInEvent
// @Failure  400  {object}  ErrorResponse  "neither or both identifiers, malformed code"
// @Failure  404  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse  "revoked, no user, already checked in, account suspended or deleted"
// @Failure  429  {object}  ErrorResponse  "rate limited"
// @Router   /api/v1/parties/{party_id}/check-ins [post]
func (a *api) handleCheckIn(c *gin.Context) {
	var req CheckInRequest
	if !bindJSON(c, &req) {
		return
	}

	if (req.TicketID == nil) == (req.Code == "") {
		badRequest(c, "exactly one of ticket_id and code is required")
		return
	}

	var (
		event domain.TicketCheckedInEvent
		err   error
	)
	if req.TicketID != nil {
		event, err = a.svcs.CheckIn.CheckInUser(c.Request.Context(), c.Param("party_id"), *req.TicketID, initiator(c))
	} else {
		event, err = a.svcs.CheckIn.CheckInByCode(c.Request.Context(), c.Param("party_id"), req.Code, initiator(c))
	}
	if err != nil {
		respondErr(c, err)
		return
	}

	a.dispatch(c, event)
	c.JSON(http.StatusCreated, event)
}

// @Summary  Revert a check-in
// @Param    id  path  string  true  "Ticket ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "not checked in"
// @Router   /api/v1/tickets/{id}/check-in [delete]
func (a *api) handleRevertCheckIn(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := a.svcs.CheckIn.RevertUserCheckIn(c.Request.Context(), id, initiator(c)); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Check-ins of a ticket
// @Param    id  path  string  true  "Ticket ID"
// @Success  200  {array}  CheckInResponse
// @Router   /api/v1/tickets/{id}/check-ins [get]
func (a *api) handleCheckIns(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	checkIns, err := a.svcs.CheckIn.CheckIns(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, mapAll(checkIns, toCheckIn))
}
