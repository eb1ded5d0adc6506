package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"warisin/internal/domain"
)

const keyPrefix = "session:"

type record struct {
	UserID    string      `json:"userId"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Store keeps sessions in Redis under session:<token>; the cookie only ever
// carries the opaque token.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, userID string, role domain.Role) (domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return domain.Session{}, err
	}
	rec := record{UserID: userID, Role: role, CreatedAt: s.now()}
	payload, err := json.Marshal(rec)
	if err != nil {
		return domain.Session{}, err
	}
	ok, err := s.rdb.SetNX(ctx, keyPrefix+token, payload, s.ttl).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return domain.Session{}, errors.New("session token collision")
	}
	return domain.Session{Token: token, UserID: rec.UserID, Role: rec.Role, CreatedAt: rec.CreatedAt}, nil
}

func (s *Store) Get(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	payload, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil || rec.UserID == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return domain.Session{Token: token, UserID: rec.UserID, Role: rec.Role, CreatedAt: rec.CreatedAt}, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
