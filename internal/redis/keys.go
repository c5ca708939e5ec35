package redisx

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "seatkeeper:v1"

func KeyAreaSeats(areaID uuid.UUID) string {
	return fmt.Sprintf("%s:area:%s:seats", ns, areaID)
}

func KeyPartyPreconditions(partyID string) string {
	return fmt.Sprintf("%s:party:%s:preconditions", ns, partyID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func KeyIdempotency(scope, idemKey string) string {
	return fmt.Sprintf("%s:idem:%s:%s", ns, scope, idemKey)
}

func ChannelDomainEvents() string {
	return ns + ":events"
}
