package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName carries the session token for browser clients.
const CookieName = "st_session"

var ErrBadToken = errors.New("invalid session token")

// TokenService signs and verifies the tokens that bind a client to its quiz
// session. The subject is the session id; there is no user identity.
type TokenService struct {
	hmac []byte
	ttl  time.Duration
	now  func() time.Time

	// Secure marks the session cookie HTTPS-only.
	Secure bool
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenService{hmac: []byte(secret), ttl: ttl, now: time.Now}
}

type Claims struct {
	jwt.RegisteredClaims
}

func (a *TokenService) Issue(sessionID string) (string, error) {
	now := a.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    "subtrainer",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

// Parse verifies the token and returns the session id it carries.
func (a *TokenService) Parse(tokenStr string) (string, error) {
	c, err := a.parseClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}

func (a *TokenService) parseClaims(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrBadToken
	}
	c, ok := token.Claims.(*Claims)
	if !ok || c.Subject == "" || c.ExpiresAt == nil {
		return nil, ErrBadToken
	}
	return c, nil
}

// SetCookie hands tok to browser clients.
func (a *TokenService) SetCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(a.ttl / time.Second),
		HttpOnly: true,
		Secure:   a.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *TokenService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
}

// TokenFromRequest looks at the Authorization bearer, the X-Session-Token
// header and the session cookie, in that order.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if h := r.Header.Get("X-Session-Token"); h != "" {
		return h
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// SessionMiddleware rejects requests without a valid token and stores the
// session id in the request context. Once less than half of a token's
// lifetime remains, a fresh token is sent in the X-Session-Token response
// header and the cookie, so an active client never hits the expiry.
func SessionMiddleware(a *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := TokenFromRequest(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "missing session token")
				return
			}
			c, err := a.parseClaims(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "bad session token")
				return
			}
			if c.ExpiresAt.Sub(a.now()) < a.ttl/2 {
				if fresh, err := a.Issue(c.Subject); err == nil {
					w.Header().Set("X-Session-Token", fresh)
					a.SetCookie(w, fresh)
				}
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), c.Subject)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
