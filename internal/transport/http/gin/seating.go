package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/service/seating"
)

// @Summary  Create seating area
// @Param    party_id  path  string  true  "Party ID"
// @Param    req  body  CreateAreaRequest  true  "payload"
// @Success  201  {object}  AreaResponse
// @Failure  409  {object}  ErrorResponse  "slug taken"
// @Router   /api/v1/parties/{party_id}/areas [post]
func (a *api) handleCreateArea(c *gin.Context) {
	var req CreateAreaRequest
	if !bindJSON(c, &req) {
		return
	}

	area, err := a.svcs.Seating.CreateArea(c.Request.Context(), c.Param("party_id"), req.Slug, req.Title)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, toArea(*area))
}

// @Summary  Create seat
// @Param    id   path  string  true  "Area ID"
// @Param    req  body  CreateSeatRequest  true  "payload"
// @Success  201  {object}  SeatResponse
// @Failure  404  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse
// @Router   /api/v1/areas/{id}/seats [post]
func (a *api) handleCreateSeat(c *gin.Context) {
	areaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateSeatRequest
	if !bindJSON(c, &req) {
		return
	}

	seat, err := a.svcs.Seating.CreateSeat(c.Request.Context(), areaID, req.X, req.Y, req.CategoryID, req.Label)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSeat(*seat))
}

// @Summary  Seats of an area with their occupants
// @Param    id  path  string  true  "Area ID"
// @Success  200  {array}  SeatResponse
// @Success  304
// @Router   /api/v1/areas/{id}/seats [get]
func (a *api) handleAreaSeats(c *gin.Context) {
	areaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	seats, err := a.svcs.Seating.AreaSeats(c.Request.Context(), areaID)
	if err != nil {
		respondErr(c, err)
		return
	}

	writeJSONWithETag(c, mapAll(seats, toSeat), "private, max-age=5")
}

// @Summary  Get seat
// @Param    id  path  string  true  "Seat ID"
// @Success  200  {object}  SeatResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/seats/{id} [get]
func (a *api) handleGetSeat(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	seat, err := a.svcs.Seating.GetSeat(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, toSeat(*seat))
}

// @Summary  Delete vacant, ungrouped seat
// @Param    id  path  string  true  "Seat ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "seat in use"
// @Router   /api/v1/seats/{id} [delete]
func (a *api) handleDeleteSeat(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := a.svcs.Seating.DeleteSeat(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Occupy seat with ticket
// @Param    id   path  string  true  "Ticket ID"
// @Param    req  body  OccupySeatRequest  true  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse  "seat taken, category mismatch, bundled ticket, group seat"
// @Failure  429  {object}  ErrorResponse  "rate limited"
// @Router   /api/v1/tickets/{id}/seat [put]
func (a *api) handleOccupySeat(c *gin.Context) {
	var req OccupySeatRequest
	if !bindJSON(c, &req) {
		return
	}

	t, ok := a.authorizedTicket(c, isSeatManager)
	if !ok {
		return
	}

	if !a.mayReserve(c, t.PartyID) {
		return
	}

	if err := a.svcs.Seating.OccupySeat(c.Request.Context(), t.ID, req.SeatID, initiator(c)); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Release ticket's seat
// @Param    id  path  string  true  "Ticket ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "ticket occupies no seat"
// @Failure  422  {object}  ErrorResponse
// @Router   /api/v1/tickets/{id}/seat [delete]
func (a *api) handleReleaseSeat(c *gin.Context) {
	t, ok := a.authorizedTicket(c, isSeatManager)
	if !ok {
		return
	}

	if err := a.svcs.Seating.ReleaseSeat(c.Request.Context(), t.ID, initiator(c)); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Create seat group
// @Param    party_id  path  string  true  "Party ID"
// @Param    req  body  CreateGroupRequest  true  "payload"
// @Success  201  {object}  GroupResponse
// @Failure  409  {object}  ErrorResponse  "title taken"
// @Failure  422  {object}  ErrorResponse
// @Router   /api/v1/parties/{party_id}/groups [post]
func (a *api) handleCreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := a.svcs.Seating.CreateGroup(c.Request.Context(), c.Param("party_id"), req.CategoryID, req.Title, req.SeatIDs)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGroup(*group))
}

// @Summary  Seat groups of a party
// @Param    party_id  path  string  true  "Party ID"
// @Success  200  {array}  GroupResponse
// @Router   /api/v1/parties/{party_id}/groups [get]
func (a *api) handlePartyGroups(c *gin.Context) {
	groups, err := a.svcs.Seating.PartyGroups(c.Request.Context(), c.Param("party_id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	writeJSONWithETag(c, mapAll(groups, toGroup), "private, max-age=5")
}

// @Summary  Get seat group
// @Param    id  path  string  true  "Group ID"
// @Success  200  {object}  GroupResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/v1/groups/{id} [get]
func (a *api) handleGetGroup(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	group, err := a.svcs.Seating.GetGroup(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroup(*group))
}

// @Summary  Delete unoccupied seat group
// @Param    id  path  string  true  "Group ID"
// @Success  204
// @Failure  409  {object}  ErrorResponse  "group occupied"
// @Router   /api/v1/groups/{id} [delete]
func (a *api) handleDeleteGroup(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := a.svcs.Seating.DeleteGroup(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary  Occupy seat group with ticket bundle
// @Param    party_id  path  string  true  "Party ID"
// @Param    id        path  string  true  "Group ID"
// @Param    req  body  OccupyGroupRequest  true  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse
// @Failure  429  {object}  ErrorResponse  "rate limited"
// @Router   /api/v1/parties/{party_id}/groups/{id}/occupy [post]
func (a *api) handleOccupyGroup(c *gin.Context) {
	groupID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req OccupyGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	if !a.ownsBundle(c, req.BundleID) || !a.mayReserve(c, c.Param("party_id")) {
		return
	}

	occupied, err := a.svcs.Seating.OccupyGroup(c.Request.Context(), c.Param("party_id"), groupID, req.BundleID, initiator(c))
	if err != nil {
		respondErr(c, err)
		return
	}

	a.dispatch(c, occupied)
	c.Status(http.StatusNoContent)
}

// @Summary  Move ticket bundle to another seat group
// @Param    party_id  path  string  true  "Party ID"
// @Param    id        path  string  true  "Currently occupied group ID"
// @Param    req  body  SwitchGroupRequest  true  "payload"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Failure  422  {object}  ErrorResponse
// @Router   /api/v1/parties/{party_id}/groups/{id}/switch [post]
func (a *api) handleSwitchGroup(c *gin.Context) {
	groupID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req SwitchGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	if !a.ownsBundle(c, req.BundleID) || !a.mayReserve(c, c.Param("party_id")) {
		return
	}

	released, occupied, err := a.svcs.Seating.SwitchGroup(
		c.Request.Context(),
		c.Param("party_id"),
		groupID,
		req.TargetGroupID,
		req.BundleID,
		initiator(c),
	)
	if err != nil {
		respondErr(c, err)
		return
	}

	a.dispatch(c, released, occupied)
	c.Status(http.StatusNoContent)
}

// @Summary  Release seat group
// @Param    party_id  path  string  true  "Party ID"
// @Param    id        path  string  true  "Group ID"
// @Success  204
// @Failure  422  {object}  ErrorResponse  "group not occupied"
// @Router   /api/v1/parties/{party_id}/groups/{id}/release [post]
func (a *api) handleReleaseGroup(c *gin.Context) {
	groupID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	released, err := a.svcs.Seating.ReleaseGroup(c.Request.Context(), c.Param("party_id"), groupID, initiator(c))
	if err != nil {
		respondErr(c, err)
		return
	}

	a.dispatch(c, released)
	c.Status(http.StatusNoContent)
}

// ownsBundle checks that the caller owns the bundle, or is an admin.
// Bundles of other users are reported as missing.
func (a *api) ownsBundle(c *gin.Context, bundleID uuid.UUID) bool {
	p, _ := principalFrom(c)
	if p.IsAdmin() {
		return true
	}

	b, err := a.svcs.Ticketing.GetBundle(c.Request.Context(), bundleID)
	if err != nil {
		respondErr(c, err)
		return false
	}

	if b.OwnedByID != p.UserID {
		respondErr(c, seating.ErrBundleNotFound)
		return false
	}

	return true
}
