package dynamodb

import (
	"context"

	"warisin/internal/domain"
)

type artisanProfileRecord struct {
	PK         string
	SK         string
	EntityType string
	UserID     string
	Story      string
	Expertise  string
	Location   string
	ImageURL   string
	Works      []string
	UpdatedAt  string
}

type applicantProfileRecord struct {
	PK           string
	SK           string
	EntityType   string
	UserID       string
	Background   string
	Interests    string
	PortfolioURL string
	UpdatedAt    string
}

type ProfileRepository struct{ client *Client }

func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) PutArtisanProfile(ctx context.Context, p domain.ArtisanProfile) error {
	works := p.Works
	if works == nil {
		works = []string{}
	}
	return r.client.put(ctx, "DynamoDB.PutArtisanProfile", artisanProfileRecord{
		PK:         userPK(p.UserID),
		SK:         artisanProfileSK,
		EntityType: "ARTISAN_PROFILE",
		UserID:     p.UserID,
		Story:      p.Story,
		Expertise:  p.Expertise,
		Location:   p.Location,
		ImageURL:   p.ImageURL,
		Works:      works,
		UpdatedAt:  formatTime(p.UpdatedAt),
	}, "")
}

func (r *ProfileRepository) GetArtisanProfile(ctx context.Context, userID string) (domain.ArtisanProfile, error) {
	var rec artisanProfileRecord
	found, err := r.client.get(ctx, "DynamoDB.GetArtisanProfile", userPK(userID), artisanProfileSK, &rec)
	if err != nil {
		return domain.ArtisanProfile{}, err
	}
	if !found {
		return domain.ArtisanProfile{}, domain.ErrNotFound
	}
	works := rec.Works
	if works == nil {
		works = []string{}
	}
	return domain.ArtisanProfile{
		UserID:    rec.UserID,
		Story:     rec.Story,
		Expertise: rec.Expertise,
		Location:  rec.Location,
		ImageURL:  rec.ImageURL,
		Works:     works,
		UpdatedAt: parseTime(rec.UpdatedAt),
	}, nil
}

func (r *ProfileRepository) PutApplicantProfile(ctx context.Context, p domain.ApplicantProfile) error {
	return r.client.put(ctx, "DynamoDB.PutApplicantProfile", applicantProfileRecord{
		PK:           userPK(p.UserID),
		SK:           applicantProfileSK,
		EntityType:   "APPLICANT_PROFILE",
		UserID:       p.UserID,
		Background:   p.Background,
		Interests:    p.Interests,
		PortfolioURL: p.PortfolioURL,
		UpdatedAt:    formatTime(p.UpdatedAt),
	}, "")
}

func (r *ProfileRepository) GetApplicantProfile(ctx context.Context, userID string) (domain.ApplicantProfile, error) {
	var rec applicantProfileRecord
	found, err := r.client.get(ctx, "DynamoDB.GetApplicantProfile", userPK(userID), applicantProfileSK, &rec)
	if err != nil {
		return domain.ApplicantProfile{}, err
	}
	if !found {
		return domain.ApplicantProfile{}, domain.ErrNotFound
	}
	return domain.ApplicantProfile{
		UserID:       rec.UserID,
		Background:   rec.Background,
		Interests:    rec.Interests,
		PortfolioURL: rec.PortfolioURL,
		UpdatedAt:    parseTime(rec.UpdatedAt),
	}, nil
}
