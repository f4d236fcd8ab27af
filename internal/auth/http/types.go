package http

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/portfolio-site/portfolio-backend/internal/auth"
)

// UserInfo is the subset of the Google profile the login flow needs.
type UserInfo struct {
	Email         string
	VerifiedEmail bool
}

// UserInfoFetcher resolves the profile behind an OAuth token.
type UserInfoFetcher interface {
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error)
}

// GoogleUserInfo calls the Google userinfo endpoint.
type GoogleUserInfo struct {
	config *oauth2.Config
}

func NewGoogleUserInfo(config *oauth2.Config) *GoogleUserInfo {
	return &GoogleUserInfo{config: config}
}

func (g *GoogleUserInfo) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	svc, err := googleoauth2.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return &UserInfo{
		Email:         info.Email,
		VerifiedEmail: info.VerifiedEmail != nil && *info.VerifiedEmail,
	}, nil
}

// NewGoogleOAuthConfig returns the OAuth client config for Google sign-in.
func NewGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email"},
		Endpoint:     google.Endpoint,
	}
}

// Handler serves the Google sign-in flow for the admin console.
type Handler struct {
	oauth      *oauth2.Config
	sessions   *auth.SessionManager
	policy     auth.Policy
	userInfo   UserInfoFetcher
	successURL string
	errorURL   string
	logger     *zap.Logger
}

type Options struct {
	OAuth      *oauth2.Config
	Sessions   *auth.SessionManager
	Policy     auth.Policy
	UserInfo   UserInfoFetcher
	SuccessURL string
	ErrorURL   string
	Logger     *zap.Logger
}

func New(opts Options) *Handler {
	h := &Handler{
		oauth:      opts.OAuth,
		sessions:   opts.Sessions,
		policy:     opts.Policy,
		userInfo:   opts.UserInfo,
		successURL: opts.SuccessURL,
		errorURL:   opts.ErrorURL,
		logger:     opts.Logger,
	}
	if h.userInfo == nil {
		h.userInfo = NewGoogleUserInfo(opts.OAuth)
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}
