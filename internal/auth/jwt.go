package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken means the request carried no credential at all.
	ErrNoToken = errors.New("missing token")
	// ErrInvalidToken covers bad signatures, malformed or expired tokens
	// and tokens with no usable subject claim.
	ErrInvalidToken = errors.New("invalid token")
)

// Cookie names recognized as token carriers, scanned in order after the
// Authorization header. Better Auth and auth.js clients name their session
// cookie differently.
var sessionCookies = []string{
	"better-auth-session",
	"token",
	"__Secure-authjs.session-token",
	"authjs.session-token",
}

// Identity is the verified principal extracted from a token.
type Identity struct {
	UserID string
	Email  string
	Claims jwt.MapClaims
}

// Verifier validates HS256 tokens signed with a shared secret and issues
// tokens for the local auth endpoints. Verification never touches the
// database.
type Verifier struct {
	secret []byte
	expiry time.Duration
}

func NewVerifier(secret string, expiryMinutes int) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

// TokenFromRequest pulls the raw credential off the request: Authorization
// header first, then the known session cookies, first match wins.
func (v *Verifier) TokenFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), nil
	}

	for _, name := range sessionCookies {
		if cookie, err := r.Cookie(name); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	return "", ErrNoToken
}

// Parse verifies signature and expiry and extracts the subject. The aud
// claim is deliberately not verified: the issuing system and this backend
// may configure different audiences. Subject fallback order is sub,
// user_id, id.
func (v *Verifier) Parse(tokenStr string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID := stringClaim(claims, "sub")
	if userID == "" {
		userID = stringClaim(claims, "user_id")
	}
	if userID == "" {
		userID = stringClaim(claims, "id")
	}
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID: userID,
		Email:  stringClaim(claims, "email"),
		Claims: claims,
	}, nil
}

// Generate issues a signed token for the given user, used by the local
// register and login endpoints.
func (v *Verifier) Generate(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(v.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
