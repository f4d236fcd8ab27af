package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/portfolio-site/portfolio-backend/config"
)

// TokenVerifier verifies Firebase ID tokens. *fbauth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*fbauth.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

// EmailFromToken returns the email claim of a verified token. The address
// must itself be verified; Firebase issues tokens for password and custom
// sign-ups whose email was never confirmed.
func EmailFromToken(token *fbauth.Token) (string, bool) {
	if token == nil {
		return "", false
	}
	email, ok := token.Claims["email"].(string)
	if !ok || email == "" {
		return "", false
	}
	if verified, _ := token.Claims["email_verified"].(bool); !verified {
		return "", false
	}
	return email, true
}
