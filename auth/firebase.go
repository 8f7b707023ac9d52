package auth

import (
	"context"
	"errors"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"coffee-shop-api/config"
)

// ErrInvalidCredential is returned for every verification failure; callers
// must not learn whether a token was malformed, expired, or revoked.
var ErrInvalidCredential = errors.New("invalid credential")

// Identity is what a verified Firebase ID token resolves to.
type Identity struct {
	UID           string
	Email         string
	Name          string
	EmailVerified bool
}

// Verifier validates Firebase ID tokens against the configured project.
type Verifier struct {
	client    *fbauth.Client
	projectID string
	log       *zap.Logger
}

// NewVerifier initializes the Firebase admin app from the credentials file,
// an inline JSON blob, or application default credentials, in that order.
func NewVerifier(ctx context.Context, s *config.Settings, log *zap.Logger) (*Verifier, error) {
	if s.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID not set")
	}

	var opts []option.ClientOption
	switch {
	case s.FirebaseCredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(s.FirebaseCredentialsJSON)))
	case fileExists(s.FirebaseCredentialsPath):
		opts = append(opts, option.WithCredentialsFile(s.FirebaseCredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: s.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	return &Verifier{client: client, projectID: s.FirebaseProjectID, log: log}, nil
}

// VerifyIDToken checks the token's signature, issuer, audience, and expiry
// with the Firebase service and returns the identity it carries.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.log.Warn("firebase token verification failed", zap.Error(err))
		return nil, ErrInvalidCredential
	}
	if token.Audience != v.projectID {
		v.log.Warn("firebase token audience mismatch", zap.String("audience", token.Audience))
		return nil, ErrInvalidCredential
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidCredential
	}
	name, _ := token.Claims["name"].(string)
	verified, _ := token.Claims["email_verified"].(bool)

	return &Identity{
		UID:           token.UID,
		Email:         email,
		Name:          name,
		EmailVerified: verified,
	}, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
