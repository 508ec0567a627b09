package handlers

import (
	"errors"
	"net/http"

	"callcenter/database"
	"callcenter/middleware"
	"callcenter/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	store Store
	log   *zap.Logger
}

func NewUserHandler(store Store, log *zap.Logger) *UserHandler {
	return &UserHandler{store: store, log: log}
}

type createUserRequest struct {
	Username string          `json:"username" validate:"required,max=100"`
	Password string          `json:"password" validate:"required,min=4,max=72"`
	Role     models.Role     `json:"role" validate:"omitempty,oneof=admin deo agent"`
	Name     string          `json:"name" validate:"required,max=200"`
	Location models.Location `json:"location" validate:"omitempty,oneof=onsite wfh"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(users))
}

// Create adds a user. Data entry operators may not mint admins.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleAgent
	}
	if req.Location == "" {
		req.Location = models.LocationOnsite
	}

	caller := middleware.GetUserFromContext(r.Context())
	if req.Role == models.RoleAdmin && !caller.IsAdmin() {
		writeError(w, http.StatusForbidden, "Only admins can create admins")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashed),
		Role:     req.Role,
		Name:     req.Name,
		Location: req.Location,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		respondError(w, r, h.log, err)
		return
	}

	h.log.Info("user created",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Uint("created_by", caller.ID),
	)
	writeJSON(w, http.StatusCreated, user)
}

// Delete removes the user. Their reports and attendance stay behind.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	caller := middleware.GetUserFromContext(r.Context())
	if caller.ID == id {
		writeError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.log.Info("user deleted", zap.Uint("user_id", id), zap.Uint("deleted_by", caller.ID))
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted"})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
