package handlers

import (
	"net/http"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// UserHandler handles staff roster routes
type UserHandler struct {
	userService UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserServiceInterface) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new staff member
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.CreateUserRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.CreateUser(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}

// GetCurrentUser returns the authenticated caller's own record
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// GetUser retrieves a staff member by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// ListUsers returns one page of the roster
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := utils.GetPaginationParams(r)

	users, total, err := h.userService.ListUsers(r.Context(), params.Page, params.PageSize)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if users == nil {
		users = []*models.User{}
	}

	utils.Paginated(w, http.StatusOK, users, params.Page, params.PageSize, total)
}

// UpdateUser applies roster attribute changes to a staff member
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	// Decode and validate the request body
	var req models.UpdateUserRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, user)
}

// UpdateUserStatus moves an account to a new lifecycle state
func (h *UserHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	// Decode and validate the request body
	var req models.UpdateUserStatusRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.userService.UpdateUserStatus(r.Context(), id, req.Status); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "Account status updated",
	})
}

// DeleteUser removes a staff member
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamUserID)
	if !ok {
		utils.BadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}
