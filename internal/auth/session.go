package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "complaint_session"

// SessionManager issues and validates admin sessions. The cookie holds a
// signed HS256 token referencing an in-process session record, so destroying
// the record on logout invalidates the token immediately. Only the admin
// flag lives in the session; the password itself is never stored.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool

	mu     sync.RWMutex
	active map[string]struct{}
}

// NewSessionManager builds a manager. The secure flag marks cookies
// Secure for production deployments.
func NewSessionManager(secret string, ttl time.Duration, secure bool) *SessionManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		active: make(map[string]struct{}),
	}
}

type sessionClaims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

// Begin creates an authenticated admin session and sets the session cookie.
func (m *SessionManager) Begin(c *fiber.Ctx) error {
	id := uuid.NewString()
	expiresAt := time.Now().Add(m.ttl)

	claims := &sessionClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.active[id] = struct{}{}
	m.mu.Unlock()

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  expiresAt,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// IsAdmin reports whether the request carries a live admin session. Absent
// or malformed session state reads as anonymous.
func (m *SessionManager) IsAdmin(c *fiber.Ctx) bool {
	claims, err := m.parse(c.Cookies(SessionCookie))
	if err != nil || !claims.Admin {
		return false
	}

	m.mu.RLock()
	_, live := m.active[claims.ID]
	m.mu.RUnlock()
	return live
}

// Destroy removes the session record and expires the cookie. A request
// without a valid session is not an error; logout is idempotent.
func (m *SessionManager) Destroy(c *fiber.Ctx) error {
	if claims, err := m.parse(c.Cookies(SessionCookie)); err == nil {
		m.mu.Lock()
		delete(m.active, claims.ID)
		m.mu.Unlock()
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (m *SessionManager) parse(tokenStr string) (*sessionClaims, error) {
	if tokenStr == "" {
		return nil, errors.New("no session token")
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}
