package application

import (
	"strings"
	"time"
	"unicode/utf8"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

// Actor is the caller of a service operation, as resolved from its session.
type Actor struct {
	UserID string
	Role   domain.Role
}

func ActorFromSession(s domain.Session) Actor {
	return Actor{UserID: s.UserID, Role: s.Role}
}

func requireRole(actor Actor, role domain.Role) error {
	if actor.UserID == "" {
		return domain.ErrUnauthenticated
	}
	if actor.Role != role {
		return domain.ErrPermissionDeny
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}

func metricsOrNop(m ports.Metrics) ports.Metrics {
	if m == nil {
		return ports.NopMetrics
	}
	return m
}
