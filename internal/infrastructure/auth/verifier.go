package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"warisin/internal/domain"
)

const firebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// Verifier checks RS256 ID tokens against a provider's published keys.
type Verifier struct {
	issuer   string
	audience string
	cache    *jwkCache
	leeway   time.Duration
}

type Option func(*options)

type options struct {
	jwksURL    string
	httpClient *http.Client
	ttl        time.Duration
}

// WithJWKSURL overrides where signing keys are fetched from.
func WithJWKSURL(url string) Option { return func(o *options) { o.jwksURL = url } }

func WithHTTPClient(client *http.Client) Option { return func(o *options) { o.httpClient = client } }

func newVerifier(issuer, audience, jwksURL string, opts []Option) *Verifier {
	o := options{jwksURL: jwksURL, ttl: 15 * time.Minute}
	for _, opt := range opts {
		opt(&o)
	}
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		cache:    newJWKCache(o.jwksURL, o.ttl, o.httpClient),
		leeway:   30 * time.Second,
	}
}

// NewFirebaseVerifier verifies Firebase Authentication ID tokens for projectID.
func NewFirebaseVerifier(projectID string, opts ...Option) *Verifier {
	return newVerifier("https://securetoken.google.com/"+projectID, projectID, firebaseJWKSURL, opts)
}

// NewCognitoVerifier verifies ID tokens issued by a Cognito user pool to clientID.
func NewCognitoVerifier(region, userPoolID, clientID string, opts ...Option) *Verifier {
	issuer := "https://cognito-idp." + region + ".amazonaws.com/" + userPoolID
	return newVerifier(issuer, clientID, issuer+"/.well-known/jwks.json", opts)
}

// NewVerifier picks the verifier for provider ("firebase" or "cognito").
func NewVerifier(provider, firebaseProjectID, region, userPoolID, clientID string, opts ...Option) (*Verifier, error) {
	switch provider {
	case "firebase":
		return NewFirebaseVerifier(firebaseProjectID, opts...), nil
	case "cognito":
		return NewCognitoVerifier(region, userPoolID, clientID, opts...), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", provider)
	}
}

type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, idToken string) (domain.Identity, error) {
	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errors.New("missing kid")
		}
		return v.cache.keyForKid(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil || !token.Valid {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}
	return domain.Identity{
		UID:     claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
