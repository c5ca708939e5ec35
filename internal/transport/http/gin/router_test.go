package httpgin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/auth"
	"github.com/kirinyoku/seatkeeper/internal/domain"
	redisrepo "github.com/kirinyoku/seatkeeper/internal/repository/redis"
	"github.com/kirinyoku/seatkeeper/internal/service"
	"github.com/kirinyoku/seatkeeper/internal/service/servicetest"
	httpgin "github.com/kirinyoku/seatkeeper/internal/transport/http/gin"
)

var secret = []byte("router-test-secret")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (d *recordingDispatcher) Dispatch(_ context.Context, evs ...domain.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, evs...)
}

func (d *recordingDispatcher) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.events))
	for _, ev := range d.events {
		out = append(out, ev.EventName())
	}
	return out
}

type memoryIdempotency struct {
	mu   sync.Mutex
	vals map[string]string
}

func (s *memoryIdempotency) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vals[key]; ok {
		return false, nil
	}
	s.vals[key] = ""
	return true, nil
}

func (s *memoryIdempotency) SaveResult(_ context.Context, key, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = "RES:" + payload
	return nil
}

func (s *memoryIdempotency) GetResult(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[key]
	if len(v) < 4 {
		return "", false, nil
	}
	return v[4:], true, nil
}

func (s *memoryIdempotency) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key)
	return nil
}

type denyingLimiter struct{}

func (denyingLimiter) Allow(context.Context, string) (redisrepo.Decision, error) {
	return redisrepo.Decision{Allowed: false, Current: 11, RetryAfter: 1500 * time.Millisecond}, nil
}

type env struct {
	*servicetest.Fixture
	router *gin.Engine
	events *recordingDispatcher
	admin  string
	owner  string
	other  string
}

func newEnv(t *testing.T, limiter httpgin.RateLimiter) *env {
	t.Helper()

	f := servicetest.New(t)
	e := &env{Fixture: f, events: &recordingDispatcher{}}

	svcs := service.NewServices(f.Store, nil, service.Config{})
	e.router = httpgin.NewRouter(svcs, httpgin.Options{
		JWTSecret:   secret,
		Events:      e.events,
		Idempotency: &memoryIdempotency{vals: map[string]string{}},
		Limiter:     limiter,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	e.admin = token(t, f.Initiator.ID, auth.RoleAdmin)
	e.owner = token(t, f.Owner.ID, auth.RoleUser)
	e.other = token(t, f.User(t, "stranger").ID, auth.RoleUser)

	return e
}

func token(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	raw, err := auth.Issue(secret, userID, role, time.Hour)
	require.NoError(t, err)
	return raw
}

func (e *env) do(t *testing.T, method, path, tok string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestAuth(t *testing.T) {
	e := newEnv(t, nil)
	path := "/api/v1/parties/" + servicetest.PartyID + "/categories"

	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, path, "garbage", nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodGet, path, e.owner, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, path, e.admin, nil).Code)

	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/healthz", "", nil).Code)
}

func TestCreateTickets_Idempotent(t *testing.T) {
	e := newEnv(t, nil)

	req := httpgin.CreateTicketsRequest{
		CategoryID: e.Category.ID,
		OwnerID:    e.Owner.ID,
		Quantity:   2,
	}

	first := e.do(t, http.MethodPost, "/api/v1/tickets", e.admin, req, "Idempotency-Key", "order-42")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	tickets := decode[[]httpgin.TicketResponse](t, first)
	require.Len(t, tickets, 2)
	assert.NotEqual(t, tickets[0].Code, tickets[1].Code)
	assert.Equal(t, "order-42", first.Header().Get("Idempotency-Key"))

	again := e.do(t, http.MethodPost, "/api/v1/tickets", e.admin, req, "Idempotency-Key", "order-42")
	require.Equal(t, http.StatusCreated, again.Code)
	assert.JSONEq(t, first.Body.String(), again.Body.String())

	fresh := e.do(t, http.MethodPost, "/api/v1/tickets", e.admin, req)
	require.Equal(t, http.StatusCreated, fresh.Code)
	assert.NotEqual(t, tickets[0].ID, decode[[]httpgin.TicketResponse](t, fresh)[0].ID)

	t.Run("validation", func(t *testing.T) {
		bad := req
		bad.Quantity = 0
		assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/api/v1/tickets", e.admin, bad).Code)

		unknown := req
		unknown.CategoryID = uuid.New()
		assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/api/v1/tickets", e.admin, unknown).Code)
	})
}

func TestSeatOccupancy(t *testing.T) {
	e := newEnv(t, nil)
	ticket := e.Ticket(t)
	seat := e.Seat(t, 1, 1)

	seatPath := "/api/v1/tickets/" + ticket.ID.String() + "/seat"
	body := httpgin.OccupySeatRequest{SeatID: seat.ID}

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPut, seatPath, e.other, body).Code,
		"tickets of other users are invisible")

	w := e.do(t, http.MethodPut, seatPath, e.owner, body)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	areaPath := "/api/v1/areas/" + e.Area.ID.String() + "/seats"
	w = e.do(t, http.MethodGet, areaPath, e.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	seats := decode[[]httpgin.SeatResponse](t, w)
	require.Len(t, seats, 1)
	require.NotNil(t, seats[0].OccupiedByTicketID)
	assert.Equal(t, ticket.ID, *seats[0].OccupiedByTicketID)

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, http.StatusNotModified, e.do(t, http.MethodGet, areaPath, e.owner, nil, "If-None-Match", etag).Code)

	w = e.do(t, http.MethodDelete, seatPath, e.owner, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodDelete, seatPath, e.owner, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "ticket occupies no seat")
}

func TestSeatOccupancy_RuleViolation(t *testing.T) {
	e := newEnv(t, nil)
	bundle := e.Bundle(t, 1)
	seat := e.Seat(t, 1, 1)

	w := e.do(t, http.MethodPut, "/api/v1/tickets/"+bundle.TicketIDs[0].String()+"/seat", e.owner,
		httpgin.OccupySeatRequest{SeatID: seat.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode[httpgin.ErrorResponse](t, w).Error, "bundle")
}

func TestSeatGroup_OccupyAndSwitch(t *testing.T) {
	e := newEnv(t, nil)
	bundle := e.Bundle(t, 2)
	g1 := e.Group(t, "Table 1", e.Seat(t, 1, 1), e.Seat(t, 2, 1))
	g2 := e.Group(t, "Table 2", e.Seat(t, 1, 2), e.Seat(t, 2, 2))

	base := "/api/v1/parties/" + servicetest.PartyID + "/groups/"

	w := e.do(t, http.MethodPost, base+g1.ID.String()+"/occupy", e.other, httpgin.OccupyGroupRequest{BundleID: bundle.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodPost, base+g1.ID.String()+"/occupy", e.owner, httpgin.OccupyGroupRequest{BundleID: bundle.ID})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, base+g2.ID.String()+"/occupy", e.owner, httpgin.OccupyGroupRequest{BundleID: bundle.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "bundle already occupies a group")

	w = e.do(t, http.MethodPost, base+g1.ID.String()+"/switch", e.owner,
		httpgin.SwitchGroupRequest{TargetGroupID: g2.ID, BundleID: bundle.ID})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, base+g2.ID.String()+"/release", e.owner, nil).Code)
	w = e.do(t, http.MethodPost, base+g2.ID.String()+"/release", e.admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	assert.Equal(t, []string{
		"seat-group-occupied",
		"seat-group-released",
		"seat-group-occupied",
		"seat-group-released",
	}, e.events.names())
}

func TestCheckIn(t *testing.T) {
	e := newEnv(t, nil)
	ticket := e.Ticket(t)
	path := "/api/v1/parties/" + servicetest.PartyID + "/check-ins"

	w := e.do(t, http.MethodPost, path, e.admin, httpgin.CheckInRequest{TicketID: &ticket.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "ticket has no user")

	w = e.do(t, http.MethodPut, "/api/v1/tickets/"+ticket.ID.String()+"/user", e.owner,
		httpgin.AppointRequest{UserID: e.Owner.ID})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, path, e.admin, httpgin.CheckInRequest{}).Code)

	w = e.do(t, http.MethodPost, path, e.admin, httpgin.CheckInRequest{Code: ticket.Code})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []string{"ticket-checked-in"}, e.events.names())

	w = e.do(t, http.MethodPost, path, e.admin, httpgin.CheckInRequest{Code: ticket.Code})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "already checked in")

	revert := "/api/v1/tickets/" + ticket.ID.String() + "/check-in"
	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, revert, e.admin, nil).Code)
	assert.Equal(t, http.StatusConflict, e.do(t, http.MethodDelete, revert, e.admin, nil).Code)
}

func TestRateLimited(t *testing.T) {
	e := newEnv(t, denyingLimiter{})
	ticket := e.Ticket(t)
	seat := e.Seat(t, 1, 1)

	w := e.do(t, http.MethodPut, "/api/v1/tickets/"+ticket.ID.String()+"/seat", e.owner,
		httpgin.OccupySeatRequest{SeatID: seat.ID})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestTicketQRCode(t *testing.T) {
	e := newEnv(t, nil)
	ticket := e.Ticket(t)

	w := e.do(t, http.MethodGet, "/api/v1/tickets/"+ticket.ID.String()+"/qrcode.png", e.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = e.do(t, http.MethodGet, "/api/v1/tickets/"+uuid.NewString()+"/qrcode.png", e.owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationStatus(t *testing.T) {
	e := newEnv(t, nil)
	e.Ticket(t)

	base := "/api/v1/parties/" + servicetest.PartyID
	w := e.do(t, http.MethodPost, base+"/preconditions", e.admin, httpgin.CreatePreconditionRequest{
		AtEarliest:            time.Now().Add(-time.Hour),
		MinimumTicketQuantity: 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, base+"/reservation-status?ticket_quantity=3", e.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[httpgin.ReservationStatusResponse](t, w)
	require.NotNil(t, status.Open)
	assert.True(t, *status.Open)
	assert.False(t, status.MayReserve, "owner manages a single ticket")

	w = e.do(t, http.MethodGet, base+"/reservation-status", e.owner, nil)
	assert.Nil(t, decode[httpgin.ReservationStatusResponse](t, w).Open)
}

func TestSeatReservation_WaitsForPreconditions(t *testing.T) {
	e := newEnv(t, nil)
	ticket := e.Ticket(t)
	seat := e.Seat(t, 1, 1)
	bundle := e.Bundle(t, 1)
	group := e.Group(t, "Table 1", e.Seat(t, 5, 5))

	base := "/api/v1/parties/" + servicetest.PartyID
	seatPath := "/api/v1/tickets/" + ticket.ID.String() + "/seat"
	occupyPath := base + "/groups/" + group.ID.String() + "/occupy"

	w := e.do(t, http.MethodPost, base+"/preconditions", e.admin, httpgin.CreatePreconditionRequest{
		AtEarliest:            time.Now().Add(24 * time.Hour),
		MinimumTicketQuantity: 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("closed", func(t *testing.T) {
		w := e.do(t, http.MethodPut, seatPath, e.owner, httpgin.OccupySeatRequest{SeatID: seat.ID})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		w = e.do(t, http.MethodPost, occupyPath, e.owner, httpgin.OccupyGroupRequest{BundleID: bundle.ID})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		assert.Nil(t, e.GetTicket(t, ticket.ID).OccupiedSeatID)
		assert.Empty(t, e.events.names())
	})

	t.Run("admins are not gated", func(t *testing.T) {
		w := e.do(t, http.MethodPut, seatPath, e.admin, httpgin.OccupySeatRequest{SeatID: seat.ID})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = e.do(t, http.MethodDelete, seatPath, e.admin, nil)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	t.Run("open", func(t *testing.T) {
		w := e.do(t, http.MethodPost, base+"/preconditions", e.admin, httpgin.CreatePreconditionRequest{
			AtEarliest:            time.Now().Add(-time.Hour),
			MinimumTicketQuantity: 1,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = e.do(t, http.MethodPut, seatPath, e.owner, httpgin.OccupySeatRequest{SeatID: seat.ID})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = e.do(t, http.MethodPost, occupyPath, e.owner, httpgin.OccupyGroupRequest{BundleID: bundle.ID})
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})
}
