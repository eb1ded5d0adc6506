package dynamodb

import (
	"context"

	"warisin/internal/domain"
)

type userRecord struct {
	PK              string
	SK              string
	EntityType      string
	ID              string
	Email           string
	Name            string
	Role            string
	Bio             string
	Location        string
	ProfileImageURL string
	AuthID          string
	CreatedAt       string
	UpdatedAt       string
}

type authRecord struct {
	PK         string
	SK         string
	EntityType string
	UserID     string
}

func newUserRecord(u domain.User) userRecord {
	return userRecord{
		PK:              userPK(u.ID),
		SK:              profileSK,
		EntityType:      "USER",
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            string(u.Role),
		Bio:             u.Bio,
		Location:        u.Location,
		ProfileImageURL: u.ProfileImageURL,
		AuthID:          u.AuthID,
		CreatedAt:       formatTime(u.CreatedAt),
		UpdatedAt:       formatTime(u.UpdatedAt),
	}
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:              r.ID,
		Email:           r.Email,
		Name:            r.Name,
		Role:            domain.Role(r.Role),
		Bio:             r.Bio,
		Location:        r.Location,
		ProfileImageURL: r.ProfileImageURL,
		AuthID:          r.AuthID,
		CreatedAt:       parseTime(r.CreatedAt),
		UpdatedAt:       parseTime(r.UpdatedAt),
	}
}

type UserRepository struct{ client *Client }

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

// Create writes the user and its AUTH# mapping in one transaction so an
// identity can never be registered twice.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	userItem, err := r.client.transactPut(newUserRecord(user), notExists)
	if err != nil {
		return err
	}
	authItem, err := r.client.transactPut(authRecord{
		PK:         authPK(user.AuthID),
		SK:         authUserSK,
		EntityType: "AUTH",
		UserID:     user.ID,
	}, notExists)
	if err != nil {
		return err
	}
	err = r.client.transact(ctx, "DynamoDB.CreateUser", userItem, authItem)
	if cancellationReasons(err) != nil {
		return domain.ErrConflict
	}
	return err
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	err := r.client.put(ctx, "DynamoDB.UpdateUser", newUserRecord(user), exists)
	if isConditionalCheckFailure(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (domain.User, error) {
	var rec userRecord
	found, err := r.client.get(ctx, "DynamoDB.GetUser", userPK(userID), profileSK, &rec)
	if err != nil {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, domain.ErrNotFound
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) GetByAuthID(ctx context.Context, authID string) (domain.User, error) {
	var rec authRecord
	found, err := r.client.get(ctx, "DynamoDB.GetUserByAuthID", authPK(authID), authUserSK, &rec)
	if err != nil {
		return domain.User{}, err
	}
	if !found {
		return domain.User{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, rec.UserID)
}
