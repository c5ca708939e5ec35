package httpgin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/service/checkin"
	"github.com/kirinyoku/seatkeeper/internal/service/reservation"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
)

var (
	notFoundErrs = []error{
		ticketing.ErrPartyNotFound,
		ticketing.ErrCategoryNotFound,
		ticketing.ErrUserNotFound,
		ticketing.ErrTicketNotFound,
		ticketing.ErrBundleNotFound,
		seating.ErrPartyNotFound,
		seating.ErrAreaNotFound,
		seating.ErrSeatNotFound,
		seating.ErrCategoryNotFound,
		seating.ErrTicketNotFound,
		seating.ErrBundleNotFound,
		seating.ErrGroupNotFound,
		reservation.ErrPartyNotFound,
		reservation.ErrPreconditionNotFound,
		checkin.ErrTicketNotFound,
		checkin.ErrUserNotFound,
	}

	conflictErrs = []error{
		ticketing.ErrCategoryExists,
		seating.ErrAreaExists,
		seating.ErrGroupExists,
		seating.ErrSeatInUse,
		seating.ErrGroupOccupied,
		seating.ErrTicketOccupiesNoSeat,
		reservation.ErrPreconditionExists,
		checkin.ErrTicketNotCheckedIn,
	}

	badRequestErrs = []error{
		ticketing.ErrInvalidQuantity,
		ticketing.ErrInvalidCode,
		reservation.ErrInvalidTicketQuantity,
		checkin.ErrInvalidCode,
	}

	// ruleViolations extract the message of a business rule violation.
	ruleViolations = []func(error) (string, bool){
		asRule[*domain.SeatingError],
		asRule[domain.TicketIsRevokedError],
		asRule[domain.TicketBelongsToDifferentPartyError],
		asRule[domain.TicketLacksUserError],
		asRule[domain.UserAlreadyCheckedInError],
		asRule[domain.UserAccountDeletedError],
		asRule[domain.UserAccountSuspendedError],
		asRule[domain.SeatChangeDeniedForBundledTicketError],
		asRule[domain.SeatChangeDeniedForGroupSeatError],
		asRule[domain.TicketCategoryMismatchError],
		asRule[domain.SeatAlreadyOccupiedError],
		asRule[domain.SeatReservationClosedError],
	}
)

func asRule[T error](err error) (string, bool) {
	var target T
	if errors.As(err, &target) {
		return target.Error(), true
	}
	return "", false
}

func isAny(err error, targets []error) (error, bool) {
	for _, t := range targets {
		if errors.Is(err, t) {
			return t, true
		}
	}
	return nil, false
}

// respondErr maps service errors to responses. Unknown errors are attached
// to the context for the logging middleware and answered with 500.
func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	for _, match := range ruleViolations {
		if msg, ok := match(err); ok {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msg})
			return
		}
	}

	if t, ok := isAny(err, notFoundErrs); ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: t.Error()})
		return
	}
	if t, ok := isAny(err, conflictErrs); ok {
		c.JSON(http.StatusConflict, ErrorResponse{Error: t.Error()})
		return
	}
	if t, ok := isAny(err, badRequestErrs); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: t.Error()})
		return
	}

	switch {
	case errors.Is(err, ticketing.ErrTicketCreationFailed),
		errors.Is(err, repository.ErrRetryable):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporarily unavailable, retry"})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
