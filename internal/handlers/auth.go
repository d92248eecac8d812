package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/middleware"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/services/identity"
	"BOOKING_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	log      *zap.Logger
	identity *identity.Service
	jwt      *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(log *zap.Logger, id *identity.Service, jwt *config.JWTConfig) *AuthHandler {
	return &AuthHandler{log: log, identity: id, jwt: jwt}
}

// Register handles account sign-up
// @Summary Register a new account
// @Description Create an account with email and password. The role decides whether the account books or offers services.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Sign-up data"
// @Success 201 {object} dto.AuthResponse "Account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Invalid request body")
		return
	}

	account, err := h.identity.Register(r.Context(), identity.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		FullName: req.FullName,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.writeSession(w, http.StatusCreated, account)
}

// Login handles password sign-in
// @Summary Login
// @Description Authenticate with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid_input", "Email and password are required")
		return
	}

	account, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.writeSession(w, http.StatusOK, account)
}

// Me returns the signed-in account
// @Summary Current account
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := accountFromRequest(w, r)
	if !ok {
		return
	}

	account, err := h.identity.Account(r.Context(), caller.ID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toAccountResponse(account))
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, account models.Account) {
	token, err := middleware.GenerateToken(account, h.jwt)
	if err != nil {
		h.log.Error("failed to sign token", zap.String("account_id", account.ID.String()), zap.Error(err))
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal", "Failed to generate token")
		return
	}

	utils.WriteJSONResponse(w, status, dto.AuthResponse{
		Account: toAccountResponse(account),
		Token:   token,
	})
}

// accountFromRequest returns the caller set by the auth middleware,
// answering 401 itself when there is none.
func accountFromRequest(w http.ResponseWriter, r *http.Request) (models.Account, bool) {
	account, ok := utils.AccountFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "not_authenticated", "Invalid user context")
		return models.Account{}, false
	}
	return account, true
}
