package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/payam/backend/internal/model"
	"github.com/payam/backend/internal/service"
	"github.com/payam/backend/pkg/auth"
)

// AuthHandler handles sign-up, sign-in, sign-out and session restore.
type AuthHandler struct {
	authService   service.AuthService
	sessionSecret []byte
	sessionTTL    time.Duration
	throttle      *SignInThrottle
	secureCookie  bool
}

// AuthConfig carries the session settings for AuthHandler.
type AuthConfig struct {
	SessionSecret []byte
	SessionTTL    time.Duration
	SecureCookie  bool
}

// NewAuthHandler creates an AuthHandler with the given service and settings.
func NewAuthHandler(authService service.AuthService, cfg AuthConfig, throttle *SignInThrottle) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionSecret: cfg.SessionSecret,
		sessionTTL:    cfg.SessionTTL,
		throttle:      throttle,
		secureCookie:  cfg.SecureCookie,
	}
}

// profileResponse is the serialized profile returned by sign-in and /me.
type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		IsAdmin:   p.IsAdmin,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// signUpRequest is the expected JSON body for POST /api/auth/signup.
type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
}

// SignUp handles POST /api/auth/signup. The confirmation check happens
// here, before the service is involved, and its error is field-scoped.
// A successful sign-up does not create a session.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if req.Password != req.ConfirmPassword {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "validation_failed",
			"field":  "confirm_password",
			"reason": "passwords do not match",
		})
		return
	}

	p, err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "validation_failed",
				"field":  ve.Field,
				"reason": ve.Reason,
			})
			return
		}
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "signup_failed")
		return
	}

	writeJSON(w, http.StatusCreated, toProfileResponse(p))
}

// signInRequest is the expected JSON body for POST /api/auth/signin.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn handles POST /api/auth/signin. Success sets the session cookie and
// returns the profile.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if h.throttle != nil && !h.throttle.Allow(r.Context(), req.Email, r) {
		writeError(w, http.StatusTooManyRequests, "too_many_attempts")
		return
	}

	p, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "validation_failed",
				"field":  ve.Field,
				"reason": ve.Reason,
			})
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			signInFailures.Inc()
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "signin_failed")
		return
	}

	token, err := auth.CreateSessionToken(p.ID, p.IsAdmin, h.sessionSecret, h.sessionTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "signin_failed")
		return
	}
	http.SetCookie(w, h.sessionCookie(token, int(h.sessionTTL.Seconds())))

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// SignOut handles POST /api/auth/signout. Clearing the cookie always
// succeeds locally; there is no remote session to invalidate.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me: the persisted-session restore. It re-reads
// the profile so display data and the admin flag are current, not whatever
// the token was minted with.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	claims, err := auth.VerifySessionToken(cookie.Value, h.sessionSecret)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_session")
		return
	}

	p, err := h.authService.Profile(r.Context(), claims.ProfileID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unknown_profile")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
