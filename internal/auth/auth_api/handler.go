package auth_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"tangokultura/internal/auth"
	"tangokultura/internal/logger"
	"tangokultura/internal/utils"
)

type Handler struct {
	AuthService *auth.Service
	Logger      *logger.Logger
}

func NewHandler(authService *auth.Service, log *logger.Logger) *Handler {
	return &Handler{
		AuthService: authService,
		Logger:      log,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Register: failed to decode body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			http.Error(w, "User already exists", http.StatusConflict)
			return
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "Email and password are required", http.StatusBadRequest)
			return
		}
		h.Logger.Error("AUTH", fmt.Sprintf("Register: %v", err))
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("AUTH", fmt.Sprintf("Register: new user %s", user.Email))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(utils.SuccessResponse("User registered", map[string]string{
		"id":    user.ID,
		"email": user.Email,
	}))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Login(creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		h.Logger.Error("AUTH", fmt.Sprintf("Login: %v", err))
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("AUTH", fmt.Sprintf("Login: issued token for %s", creds.Email))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
