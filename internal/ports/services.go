package ports

import (
	"context"
	"io"

	"warisin/internal/domain"
)

type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Debug(ctx context.Context, msg string, args ...any)
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (domain.Identity, error)
}

type SessionStore interface {
	Create(ctx context.Context, userID string, role domain.Role) (domain.Session, error)
	// Get returns ErrUnauthenticated for unknown or expired tokens.
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type BlobStorage interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (domain.StoredFile, error)
	Delete(ctx context.Context, path string) error
}

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Metrics interface {
	ApplicationCreated()
	ApplicationTransitioned(from, to domain.ApplicationStatus)
	DescriptionGenerated(source string)
}

type nopMetrics struct{}

func (nopMetrics) ApplicationCreated() {}

func (nopMetrics) ApplicationTransitioned(domain.ApplicationStatus, domain.ApplicationStatus) {}

func (nopMetrics) DescriptionGenerated(string) {}

// NopMetrics discards every observation.
var NopMetrics Metrics = nopMetrics{}
