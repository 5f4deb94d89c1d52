package auth

import (
	"context"

	"github.com/shahadathhs/blogman/internal/domain"
	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the subset of ID-token claims the auth flow needs.
type GoogleIdentity struct {
	Sub     string
	Email   string
	Name    *string
	Picture *string
}

// GoogleVerifier validates a Google Sign-In ID token against the configured
// OAuth client id. Defined as an interface so tests can inject a fake.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, v.clientID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	sub := payload.Subject
	email, _ := payload.Claims["email"].(string)
	if sub == "" || email == "" {
		return nil, domain.ErrTokenInvalid
	}

	identity := &GoogleIdentity{Sub: sub, Email: email}
	if name, ok := payload.Claims["name"].(string); ok && name != "" {
		identity.Name = &name
	}
	if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
		identity.Picture = &picture
	}
	return identity, nil
}
