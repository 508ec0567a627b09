package handlers

import (
	"errors"
	"net"
	"net/http"

	"callcenter/database"
	"callcenter/middleware"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	store Store
	auth  *middleware.Auth
	log   *zap.Logger
}

func NewAuthHandler(store Store, auth *middleware.Auth, log *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, auth: auth, log: log}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	ip := clientIP(r)
	if err := h.store.UpdateUserIP(r.Context(), user.ID, ip); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	user.LastIP = ip

	token, _, err := h.auth.GenerateToken(user)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	middleware.SetTokenCookie(w, token, h.auth.Expiration())

	h.log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("ip", ip))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Revoke(r.Context(), middleware.GetClaimsFromContext(r.Context())); err != nil {
		h.log.Warn("token revocation failed", zap.Error(err))
	}
	middleware.ClearTokenCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// clientIP strips the port chi's RealIP middleware may leave on RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
