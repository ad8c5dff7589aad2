package handlers

import (
	"net/http"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles credential verification and token issuance
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Also set the token as an HTTP-only cookie for browser clients.
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AuthTokenCookie,
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  resp.ExpiresAt,
	})

	utils.JSON(w, http.StatusOK, resp)
}

// ChangePassword replaces the authenticated caller's permanent password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Decode and validate the request body
	var req models.ChangePasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "Password changed successfully",
	})
}
