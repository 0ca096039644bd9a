package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yashvi-chat/yashvi/internal/domains/session"
	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

const (
	sessionCookie  = "yashvi_session"
	ctxSessionKey  = "session"
	cookieMaxAge   = 0 // session cookie, dies with the browser
	cookiePathRoot = "/"
)

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionMiddleware attaches the browser's session record to the request,
// creating one (and minting its cookie token) when none exists. The cookie
// only carries the session ID; all state lives server-side in the registry.
func SessionMiddleware(registry *session.Registry, jwtSecret string, ttl time.Duration, logger *Logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := lookupSession(c, registry, jwtSecret); ok {
			c.Set(ctxSessionKey, sess)
			c.Next()
			return
		}

		sess := registry.Create()
		token, err := mintSessionToken(sess.ID, jwtSecret, ttl)
		if err != nil {
			logger.Errorf("failed to mint session token: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetCookie(sessionCookie, token, cookieMaxAge, cookiePathRoot, "", false, true)
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

func lookupSession(c *gin.Context, registry *session.Registry, jwtSecret string) (*session.Session, bool) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}

	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return nil, false
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, false
	}
	return registry.Get(id)
}

func mintSessionToken(id uuid.UUID, jwtSecret string, ttl time.Duration) (string, error) {
	claims := &sessionClaims{
		SessionID: id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   id.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}

// CurrentSession pulls the session the middleware attached.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(ctxSessionKey).(*session.Session)
}

// RequireRole bounces requests whose session is not authenticated with the
// given role back to the page root (which renders the login form).
func RequireRole(role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).Role() != role {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
