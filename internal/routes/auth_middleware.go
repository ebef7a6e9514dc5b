// Authentication middleware
// Restores the operator session from the auth cookie. Each request gets its
// own session manager backed by the cookie, so the cookie plays the part of
// the saved session slot.
package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"visitor-pass-console/internal/jwt"
	"visitor-pass-console/internal/model"
	"visitor-pass-console/internal/nonce"
	"visitor-pass-console/internal/session"
)

const AUTH_COOKIE_NAME = "auth_token"

// Revocation lifetime for tokens issued without expiry.
const untimedRevocation = 365 * 24 * time.Hour

const (
	baseURLKey  = "BaseURL"
	policyKey   = "policy"
	sessionKey  = "session"
	operatorKey = "operator"
)

// CookieStore keeps the session snapshot in a signed auth cookie.
type CookieStore struct {
	c       *gin.Context
	signer  *jwt.Signer
	revoked nonce.NonceStoreInterface
	ttl     time.Duration

	claims *jwt.SessionClaim
}

func (s *CookieStore) secure() bool {
	return s.c.Request.TLS != nil || s.c.GetHeader("X-Forwarded-Proto") == "https"
}

// Load decodes the auth cookie. Revoked and invalid tokens count as no session.
func (s *CookieStore) Load(ctx context.Context) *model.Operator {
	token, err := s.c.Cookie(AUTH_COOKIE_NAME)
	if err != nil || token == "" {
		return nil
	}
	claims, err := s.signer.DecodeSession(token)
	if err != nil {
		slog.Debug("Ignoring invalid auth token", "error", err)
		return nil
	}
	if s.revoked.Exists(ctx, claims.ID) {
		slog.Debug("Ignoring revoked auth token", "jti", claims.ID)
		return nil
	}
	s.claims = claims
	op := claims.Operator
	return &op
}

// Save issues a new auth cookie for op. The cookie lives as long as the token.
func (s *CookieStore) Save(ctx context.Context, op model.Operator) error {
	claim := jwt.NewSessionClaim(op, s.ttl)
	token, err := s.signer.Sign(claim)
	if err != nil {
		return err
	}
	s.claims = &claim

	s.c.SetCookie(
		AUTH_COOKIE_NAME,
		token,
		int(s.ttl.Seconds()),
		"/",
		"",
		s.secure(),
		true,
	)
	return nil
}

// Clear revokes the current token and expires the cookie.
func (s *CookieStore) Clear(ctx context.Context) error {
	if s.claims != nil {
		ttl := untimedRevocation
		if s.claims.ExpiresAt != nil {
			ttl = time.Until(s.claims.ExpiresAt.Time)
		}
		if ttl > 0 {
			if err := s.revoked.Put(ctx, s.claims.ID, ttl); err != nil {
				return err
			}
		}
		s.claims = nil
	}

	// Clear auth cookie by setting it to expire in the past
	s.c.SetCookie(
		AUTH_COOKIE_NAME,
		"",
		-1,
		"/",
		"",
		s.secure(),
		true,
	)
	return nil
}

// AuthMiddleware attaches the request session and, when signed in, the operator.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := &CookieStore{
			c:       c,
			signer:  h.signer,
			revoked: h.revoked,
			ttl:     h.cfg.SessionTTL(),
		}
		m := session.NewManager(c.Request.Context(), h.console.Operators, st,
			session.WithRevalidation(h.cfg.Session.Revalidate))

		c.Set(sessionKey, m)
		if op, ok := m.Current(c.Request.Context()); ok {
			c.Set(operatorKey, op)
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *session.Manager {
	return c.MustGet(sessionKey).(*session.Manager)
}

func currentOperator(c *gin.Context) (model.Operator, bool) {
	v, ok := c.Get(operatorKey)
	if !ok {
		return model.Operator{}, false
	}
	op, ok := v.(model.Operator)
	return op, ok
}

// RequireAuth creates middleware that requires authentication.
// Browsers are sent to the login page, API clients get 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		op, ok := currentOperator(c)
		if !ok {
			if wantsHTML(c) && c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusFound, c.GetString(baseURLKey)+"/login")
				c.Abort()
				return
			}
			AbortWithError(c, ErrUnauthorized)
			return
		}
		slog.Debug("RequireAuth: Authenticated operator", "username", op.Username)
		c.Next()
	}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) AuthRoutes(r *gin.RouterGroup) {
	r.POST("/login", func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBind(&req); err != nil {
			AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
			return
		}

		op, err := sessionFrom(c).Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if c.ContentType() != gin.MIMEJSON {
			c.Redirect(http.StatusSeeOther, c.GetString(baseURLKey)+"/")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "operator": op})
	})

	r.POST("/logout", func(c *gin.Context) {
		sessionFrom(c).Logout(c.Request.Context())

		if c.ContentType() != gin.MIMEJSON && wantsHTML(c) {
			c.Redirect(http.StatusSeeOther, c.GetString(baseURLKey)+"/login")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// Route to check authentication status
	r.GET("/status", func(c *gin.Context) {
		m := sessionFrom(c)
		state := m.State(c.Request.Context())
		resp := gin.H{"status": state.String()}
		if op, ok := m.Current(c.Request.Context()); ok {
			resp["operator"] = op
		}
		c.JSON(http.StatusOK, resp)
	})
}
