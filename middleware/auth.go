package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"callcenter/access"
	"callcenter/models"
	"callcenter/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserContextKey   contextKey = "user"
	ClaimsContextKey contextKey = "claims"
)

const TokenCookie = "token"

type Claims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserLookup loads the user a token was issued to.
type UserLookup interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type Auth struct {
	secret     []byte
	expiration time.Duration
	users      UserLookup
	denylist   *session.Denylist
	log        *zap.Logger
}

func NewAuth(secret string, expiration time.Duration, users UserLookup, denylist *session.Denylist, log *zap.Logger) *Auth {
	return &Auth{
		secret:     []byte(secret),
		expiration: expiration,
		users:      users,
		denylist:   denylist,
		log:        log,
	}
}

func (a *Auth) Expiration() time.Duration {
	return a.expiration
}

// GenerateToken issues a signed session token with a fresh token id.
func (a *Auth) GenerateToken(user *models.User) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// Revoke denylists the token behind claims until it would have expired.
func (a *Auth) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return a.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// Middleware authenticates the request from the token cookie or a Bearer
// header and stores the user and claims in the context. Failures answer 401.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			ClearTokenCookie(w)
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		revoked, err := a.denylist.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			// Fails open when redis is unreachable.
			a.log.Warn("token denylist unavailable", zap.Error(err))
		}
		if revoked {
			ClearTokenCookie(w)
			writeError(w, http.StatusUnauthorized, "Session has ended")
			return
		}

		user, err := a.users.GetUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		ctx = context.WithValue(ctx, ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require lets the request through only when the caller may perform action.
func Require(action access.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := access.Authorize(PrincipalFromContext(r.Context()), action)
			switch {
			case errors.Is(err, access.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, "Not authenticated")
			case errors.Is(err, access.ErrForbidden):
				writeError(w, http.StatusForbidden, "Forbidden")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func SetTokenCookie(w http.ResponseWriter, token string, expiration time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(expiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func GetClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

func PrincipalFromContext(ctx context.Context) *access.Principal {
	return access.PrincipalOf(GetUserFromContext(ctx))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
