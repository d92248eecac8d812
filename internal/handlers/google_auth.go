package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/middleware"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/services/identity"
	"BOOKING_BACK-END/internal/utils"
)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	log         *zap.Logger
	identity    *identity.Service
	jwt         *config.JWTConfig
	frontendURL string
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(log *zap.Logger, id *identity.Service, cfg *config.Config) *GoogleAuthHandler {
	return &GoogleAuthHandler{
		log:         log,
		identity:    id,
		jwt:         &cfg.JWT,
		frontendURL: cfg.GoogleOAuth.FrontendCallbackURL,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow. The optional role is applied when the Google account signs in for the first time.
// @Tags authentication
// @Produce json
// @Param role query string false "client or provider"
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Failure 401 {object} dto.ErrorResponse "Google sign-in disabled"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	// state carries the requested role through Google: "<nonce>.<role>"
	state := uuid.New().String()
	if role, ok := models.ParseRole(r.URL.Query().Get("role")); ok {
		state += "." + string(role)
	}

	authURL, err := h.identity.GoogleAuthURL(state)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{AuthURL: authURL, State: state})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State returned by the login endpoint"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Success 302 "Redirect to the frontend callback with the token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	_, roleHint, _ := strings.Cut(q.Get("state"), ".")

	account, err := h.identity.GoogleSignIn(r.Context(), q.Get("code"), roleHint)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	token, err := middleware.GenerateToken(account, h.jwt)
	if err != nil {
		h.log.Error("failed to sign token", zap.String("account_id", account.ID.String()), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to generate token")
		return
	}

	if h.frontendURL == "" {
		utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{Account: toAccountResponse(account), Token: token})
		return
	}

	v := url.Values{}
	v.Set("token", token)
	v.Set("user_id", account.ID.String())
	v.Set("email", account.Email)
	v.Set("provider", "google")
	http.Redirect(w, r, h.frontendURL+"?"+v.Encode(), http.StatusFound)
}
