package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// ResetHandler handles the password-reset workflow routes
type ResetHandler struct {
	resetService ResetServiceInterface
}

// NewResetHandler creates a new ResetHandler
func NewResetHandler(resetService ResetServiceInterface) *ResetHandler {
	if resetService == nil {
		panic("resetService cannot be nil")
	}
	return &ResetHandler{
		resetService: resetService,
	}
}

// RequestReset files a reset request. The endpoint is public and answers
// with the same acknowledgement whether or not the supplied identity
// matched an account.
func (h *ResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.CreateResetRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.resetService.Request(r.Context(), &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusAccepted, map[string]string{
		"message": constants.MsgResetRequestAccepted,
	})
}

// ListPending returns every reset request awaiting action, for the admin
// approval screen.
func (h *ResetHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.resetService.ListPending(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if summaries == nil {
		summaries = []*models.ResetRequestSummary{}
	}

	utils.JSON(w, http.StatusOK, summaries)
}

// Approve mints a temporary credential for the request. The response carries
// the plaintext credential for out-of-band delivery; it is never shown again.
func (h *ResetHandler) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	requestIDStr := chi.URLParam(r, constants.ParamRequestID)
	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, "Invalid request ID", nil)
		return
	}

	resp, err := h.resetService.Approve(r.Context(), requestID, adminID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}
