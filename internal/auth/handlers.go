// ABOUTME: HTTP handlers for login, signup, verify, logout, me, and stats.
// ABOUTME: Thin orchestration over the account registry and token codec.

package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/authlab/auth-ui/internal/store"
)

// minPasswordLength is the signup password policy. Login has no policy at
// all; only signup enforces this.
const minPasswordLength = 8

// loginRequest is the JSON request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember *bool  `json:"remember"`
}

// signupRequest is the JSON request body for POST /api/auth/signup.
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// verifyRequest is the JSON request body for POST /api/auth/verify.
type verifyRequest struct {
	Token string `json:"token"`
}

// userPayload is the account view returned to clients. CreatedAt is only
// present on responses that include it (login-authenticated, signup, me).
type userPayload struct {
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// authResponse is the JSON response for login and signup.
type authResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Token      string      `json:"token"`
	User       userPayload `json:"user"`
	RememberMe *bool       `json:"rememberMe,omitempty"`
}

// verifyResponse is the JSON response for POST /api/auth/verify.
type verifyResponse struct {
	Success bool         `json:"success"`
	Valid   bool         `json:"valid"`
	Message string       `json:"message,omitempty"`
	User    *userPayload `json:"user,omitempty"`
}

// meResponse is the JSON response for GET /api/auth/me.
type meResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
}

// statsResponse is the JSON response for GET /api/auth/stats.
type statsResponse struct {
	TotalUsers       int       `json:"totalUsers"`
	RegisteredEmails []string  `json:"registeredEmails"`
	Timestamp        time.Time `json:"timestamp"`
}

// messageResponse is the generic success/error envelope.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// loginOutcome tags the two ways a login resolves.
type loginOutcome int

const (
	// outcomeAuthenticated means the stored password matched.
	outcomeAuthenticated loginOutcome = iota
	// outcomeProvisioned means the account was created or overwritten from
	// the supplied credentials (demo mode).
	outcomeProvisioned
)

// Handlers exposes the auth endpoints. All state lives in the registry;
// the handlers themselves are stateless and safe for concurrent use.
type Handlers struct {
	registry *store.Registry
	codec    TokenCodec
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandlers creates the auth handlers.
func NewHandlers(registry *store.Registry, codec TokenCodec, logger *slog.Logger) *Handlers {
	return &Handlers{
		registry: registry,
		codec:    codec,
		logger:   logger.With("component", "auth"),
		now:      time.Now,
	}
}

// RegisterRoutes registers all auth routes on the given mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/signup", h.handleSignup)
	mux.HandleFunc("POST /api/auth/verify", h.handleVerify)
	mux.HandleFunc("POST /api/auth/logout", h.handleLogout)
	mux.HandleFunc("GET /api/auth/me", h.handleMe)
	mux.HandleFunc("GET /api/auth/stats", h.handleStats)
}

// resolveLogin decides between authenticating against the stored account
// and provisioning a fresh one. Unknown email and wrong password both take
// the provisioning branch, which overwrites any existing record.
func (h *Handlers) resolveLogin(email, password string) (store.Account, loginOutcome) {
	acct, err := h.registry.Get(email)
	if err == nil && acct.Password == password {
		return acct, outcomeAuthenticated
	}

	acct = store.Account{
		Email:     email,
		Password:  password,
		Name:      localPart(email),
		CreatedAt: h.now(),
	}
	h.registry.Put(acct)
	return acct, outcomeProvisioned
}

// handleLogin handles POST /api/auth/login.
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	acct, outcome := h.resolveLogin(req.Email, req.Password)
	token := h.codec.Generate(acct.Email)

	if outcome == outcomeAuthenticated {
		createdAt := acct.CreatedAt
		writeJSON(w, http.StatusOK, authResponse{
			Success: true,
			Message: "Login successful",
			Token:   token,
			User: userPayload{
				Email:     acct.Email,
				Name:      acct.Name,
				CreatedAt: &createdAt,
			},
			RememberMe: req.Remember,
		})
		return
	}

	h.logger.Info("account provisioned on login", "email", acct.Email)
	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful (demo mode)",
		Token:   token,
		User: userPayload{
			Email: acct.Email,
			Name:  acct.Name,
		},
	})
}

// handleSignup handles POST /api/auth/signup.
func (h *Handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	acct := store.Account{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		CreatedAt: h.now(),
	}
	if !h.registry.PutIfAbsent(acct) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}

	h.logger.Info("account created", "email", acct.Email)
	createdAt := acct.CreatedAt
	writeJSON(w, http.StatusCreated, authResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   h.codec.Generate(acct.Email),
		User: userPayload{
			Email:     acct.Email,
			Name:      acct.Name,
			CreatedAt: &createdAt,
		},
	})
}

// handleVerify handles POST /api/auth/verify.
func (h *Handlers) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "Token required")
		return
	}

	email, err := h.codec.Decode(req.Token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, verifyResponse{
			Success: false,
			Valid:   false,
			Message: "Token verification failed",
		})
		return
	}

	acct, err := h.registry.Get(email)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, verifyResponse{
			Success: false,
			Valid:   false,
			Message: "Invalid token",
		})
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Success: true,
		Valid:   true,
		User: &userPayload{
			Email: acct.Email,
			Name:  acct.Name,
		},
	})
}

// handleLogout handles POST /api/auth/logout. Tokens are stateless, so
// there is nothing to revoke; this is an acknowledgement only.
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// handleMe handles GET /api/auth/me.
func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	email, err := h.codec.Decode(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	acct, err := h.registry.Get(email)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	createdAt := acct.CreatedAt
	writeJSON(w, http.StatusOK, meResponse{
		Success: true,
		User: userPayload{
			Email:     acct.Email,
			Name:      acct.Name,
			CreatedAt: &createdAt,
		},
	})
}

// handleStats handles GET /api/auth/stats. There is no access control on
// this endpoint; the response includes every registered email.
func (h *Handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		TotalUsers:       h.registry.Len(),
		RegisteredEmails: h.registry.Emails(),
		Timestamp:        h.now(),
	})
}

// bearerToken extracts a token from an Authorization header value. A bare
// token without the "Bearer " prefix is accepted, matching what existing
// clients send.
func bearerToken(header string) (string, bool) {
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

// localPart returns the substring of an email before the '@', used as the
// default display name for provisioned accounts.
func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error envelope with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Success: false, Message: message})
}
