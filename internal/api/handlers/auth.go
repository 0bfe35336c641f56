package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devconnect/devconnect-api/internal/api/middleware"
	"github.com/devconnect/devconnect-api/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, service.FieldError{Message: "Invalid request body"})
		return
	}

	token, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		if errors.Is(err, service.ErrUserExists) {
			writeErrors(w, http.StatusBadRequest, service.FieldError{Message: "User already exists"})
			return
		}
		serverError(w, "AuthHandler.Register", err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, service.FieldError{Message: "Invalid request body"})
		return
	}

	token, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeErrors(w, http.StatusBadRequest, service.FieldError{Message: "Invalid Credentials"})
			return
		}
		serverError(w, "AuthHandler.Login", err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Me handles GET /api/auth: the authenticated user, password excluded.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	user, err := h.authService.GetAuthenticated(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, "AuthHandler.Me", err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
