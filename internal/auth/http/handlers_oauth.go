package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/portfolio-site/portfolio-backend/internal/auth"
)

// Login starts the Google sign-in flow.
func (h *Handler) Login(c *gin.Context) {
	session, _ := h.sessions.Get(c.Request)

	state := uuid.NewString()
	session.Values[auth.SessionKeyState] = state
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.logger.Error("failed to save oauth state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to start sign-in"})
		return
	}

	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account")))
}

// Callback completes the Google sign-in. Only the configured admin email may
// sign in; everyone else is sent to the access-denied page.
func (h *Handler) Callback(c *gin.Context) {
	if reason := c.Query("error"); reason != "" {
		h.logger.Info("google sign-in cancelled", zap.String("reason", reason))
		h.deny(c)
		return
	}

	session, _ := h.sessions.Get(c.Request)
	expected, _ := session.Values[auth.SessionKeyState].(string)
	delete(session.Values, auth.SessionKeyState)

	if expected == "" || c.Query("state") != expected {
		h.logger.Warn("oauth state mismatch")
		_ = session.Save(c.Request, c.Writer)
		h.deny(c)
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, c.Query("code"))
	if err != nil {
		h.logger.Warn("oauth code exchange failed", zap.Error(err))
		_ = session.Save(c.Request, c.Writer)
		h.deny(c)
		return
	}

	info, err := h.userInfo.FetchUserInfo(ctx, token)
	if err != nil {
		h.logger.Warn("failed to fetch google profile", zap.Error(err))
		_ = session.Save(c.Request, c.Writer)
		h.deny(c)
		return
	}

	if !info.VerifiedEmail || !h.policy.IsAdmin(info.Email) {
		h.logger.Warn("sign-in rejected", zap.String("email", info.Email), zap.Bool("verified", info.VerifiedEmail))
		_ = session.Save(c.Request, c.Writer)
		h.deny(c)
		return
	}

	session.Values[auth.SessionKeyEmail] = info.Email
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		h.deny(c)
		return
	}

	h.logger.Info("admin signed in", zap.String("email", info.Email))
	c.Redirect(http.StatusFound, h.successURL)
}

// Logout clears the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports who is signed in, as resolved by the identity middlewares.
func (h *Handler) Session(c *gin.Context) {
	email := auth.UserEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not signed in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"email": email,
			"admin": h.policy.IsAdmin(email),
		},
	})
}

func (h *Handler) deny(c *gin.Context) {
	c.Redirect(http.StatusFound, h.errorURL)
}
