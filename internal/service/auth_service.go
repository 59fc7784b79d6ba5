package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mmynk/storeadmin/internal/auth"
	"github.com/mmynk/storeadmin/internal/middleware"
	"github.com/mmynk/storeadmin/internal/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

func (b *registerRequest) Required() []Field {
	return []Field{
		{Label: "Email", Present: b.Email != ""},
		{Label: "Display name", Present: b.DisplayName != ""},
		{Label: "Password", Present: b.Password != ""},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (b *loginRequest) Required() []Field {
	return []Field{
		{Label: "Email", Present: b.Email != ""},
		{Label: "Password", Present: b.Password != ""},
	}
}

// sessionResponse is returned by register and login.
type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService issues bearer tokens for accounts.
type AuthService struct {
	authenticator auth.Authenticator
	users         auth.UserStorage
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, users auth.UserStorage, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Register mounts the account routes on r.
func (s *AuthService) Register(r *mux.Router) {
	r.HandleFunc("/api/auth/register", s.SignUp).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", s.Me).Methods(http.MethodGet)
}

// SignUp creates a new user account and returns a token for it.
func (s *AuthService) SignUp(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) || !requireFields(w, &req) {
		return
	}
	s.logger.Info("Register request", "email", req.Email)

	user, err := s.authenticator.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			s.logger.Warn("Registration failed", "email", req.Email, "error", err)
			writeText(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			writeText(w, http.StatusBadRequest, "Password must be at least 8 characters")
		default:
			s.logger.Error("Registration failed", "email", req.Email, "error", err)
			writeText(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	s.respondWithToken(w, user)
	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
}

// Login authenticates a user and returns a token.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) || !requireFields(w, &req) {
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("Login failed", "email", req.Email)
			writeText(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.Error("Login failed", "email", req.Email, "error", err)
		writeText(w, http.StatusInternalServerError, msgInternal)
		return
	}

	s.respondWithToken(w, user)
	s.logger.Info("User logged in successfully", "user_id", user.ID)
}

// Me returns the authenticated account.
func (s *AuthService) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeText(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	user, err := s.users.GetUserByID(r.Context(), userID)
	if err != nil {
		s.logger.Error("Failed to load current user", "user_id", userID, "error", err)
		writeText(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if user == nil {
		// Token outlived the account.
		writeText(w, http.StatusUnauthorized, msgUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *AuthService) respondWithToken(w http.ResponseWriter, user *models.User) {
	token, err := s.jwtManager.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeText(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}
