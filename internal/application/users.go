package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"warisin/internal/domain"
	"warisin/internal/ports"
)

type UserService struct {
	users    ports.UserRepository
	verifier ports.IdentityVerifier
	sessions ports.SessionStore
	logger   ports.Logger
}

func NewUserService(users ports.UserRepository, verifier ports.IdentityVerifier, sessions ports.SessionStore, logger ports.Logger) *UserService {
	return &UserService{users: users, verifier: verifier, sessions: sessions, logger: logger}
}

// Login verifies the identity token, creates the local user on first sign-in
// and opens a new session. An existing user keeps the role it was created with.
func (s *UserService) Login(ctx context.Context, idToken string, requested domain.Role) (domain.User, domain.Session, error) {
	if strings.TrimSpace(idToken) == "" {
		return domain.User{}, domain.Session{}, domain.ErrUnauthenticated
	}
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		s.logger.Warn(ctx, "identity token rejected", "error", err)
		return domain.User{}, domain.Session{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	user, err := s.users.GetByAuthID(ctx, identity.UID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.register(ctx, identity, requested)
		if err != nil {
			return domain.User{}, domain.Session{}, err
		}
	case err != nil:
		return domain.User{}, domain.Session{}, err
	default:
		if requested != "" && requested != user.Role {
			s.logger.Warn(ctx, "login role differs from stored role", "user_id", user.ID, "requested", requested, "role", user.Role)
		}
	}

	session, err := s.sessions.Create(ctx, user.ID, user.Role)
	if err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return user, session, nil
}

func (s *UserService) register(ctx context.Context, identity domain.Identity, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, domain.ErrInvalidInput
	}
	ts := now()
	user := domain.User{
		ID:              uuid.NewString(),
		Email:           identity.Email,
		Name:            displayName(identity),
		Role:            role,
		ProfileImageURL: identity.Picture,
		AuthID:          identity.UID,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// A concurrent first login won the authId mapping.
			return s.users.GetByAuthID(ctx, identity.UID)
		}
		return domain.User{}, err
	}
	s.logger.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func displayName(identity domain.Identity) string {
	if name := strings.TrimSpace(identity.Name); name != "" {
		return name
	}
	if at := strings.IndexByte(identity.Email, '@'); at > 0 {
		return identity.Email[:at]
	}
	return "Pengguna"
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a session token to the session stored server side.
func (s *UserService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return s.sessions.Get(ctx, token)
}

func (s *UserService) Me(ctx context.Context, actor Actor) (domain.User, error) {
	if actor.UserID == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return s.users.GetByID(ctx, actor.UserID)
}

type UserUpdate struct {
	Name            string
	Bio             string
	Location        string
	ProfileImageURL string
}

func (s *UserService) Update(ctx context.Context, actor Actor, in UserUpdate) (domain.User, error) {
	if actor.UserID == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	if !lengthBetween(in.Name, 1, 120) || !lengthBetween(in.Bio, 0, 2000) || !lengthBetween(in.Location, 0, 200) {
		return domain.User{}, domain.ErrInvalidInput
	}
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return domain.User{}, err
	}
	user.Name = strings.TrimSpace(in.Name)
	user.Bio = in.Bio
	user.Location = in.Location
	user.ProfileImageURL = in.ProfileImageURL
	user.UpdatedAt = now()
	if err := s.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
