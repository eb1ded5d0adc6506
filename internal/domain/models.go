package domain

import "time"

type Role string

const (
	RoleArtisan   Role = "ARTISAN"
	RoleApplicant Role = "APPLICANT"
)

func (r Role) Valid() bool {
	return r == RoleArtisan || r == RoleApplicant
}

type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            Role      `json:"role"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	ProfileImageURL string    `json:"profile_image_url"`
	AuthID          string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PublicUser is the part of a user shown to anonymous visitors.
type PublicUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Role            Role   `json:"role"`
	Bio             string `json:"bio"`
	Location        string `json:"location"`
	ProfileImageURL string `json:"profile_image_url"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Name:            u.Name,
		Role:            u.Role,
		Bio:             u.Bio,
		Location:        u.Location,
		ProfileImageURL: u.ProfileImageURL,
	}
}

type ArtisanProfile struct {
	UserID    string    `json:"user_id"`
	Story     string    `json:"story"`
	Expertise string    `json:"expertise"`
	Location  string    `json:"location"`
	ImageURL  string    `json:"image_url"`
	Works     []string  `json:"works"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ApplicantProfile struct {
	UserID       string    `json:"user_id"`
	Background   string    `json:"background"`
	Interests    string    `json:"interests"`
	PortfolioURL string    `json:"portfolio_url"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type HeritageCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Program struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Location    string     `json:"location"`
	Criteria    string     `json:"criteria"`
	CategoryID  string     `json:"category_id"`
	ArtisanID   string     `json:"artisan_id"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsOpen      bool       `json:"is_open"`
	MediaURLs   []string   `json:"media_urls"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Ended reports whether the program's end date lies before now.
func (p Program) Ended(now time.Time) bool {
	return p.EndDate != nil && p.EndDate.Before(now)
}

type Application struct {
	ID          string            `json:"id"`
	ProgramID   string            `json:"program_id"`
	ApplicantID string            `json:"applicant_id"`
	Message     string            `json:"message"`
	Motivation  string            `json:"motivation"`
	CVURL       string            `json:"cv_url"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Identity is what the identity provider vouches for after verifying a bearer token.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type StoredFile struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}
