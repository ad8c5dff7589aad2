package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// DepartmentHandler handles organizational-structure routes
type DepartmentHandler struct {
	departmentService DepartmentServiceInterface
}

// NewDepartmentHandler creates a new DepartmentHandler
func NewDepartmentHandler(departmentService DepartmentServiceInterface) *DepartmentHandler {
	if departmentService == nil {
		panic("departmentService cannot be nil")
	}
	return &DepartmentHandler{
		departmentService: departmentService,
	}
}

// CreateDepartment registers a new department
func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.CreateDepartmentRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	department, err := h.departmentService.CreateDepartment(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, department)
}

// GetDepartment retrieves a department by ID
func (h *DepartmentHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamDepartmentID)
	if !ok {
		utils.BadRequest(w, "Invalid department ID", nil)
		return
	}

	department, err := h.departmentService.GetDepartmentByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, department)
}

// ListDepartments returns every department
func (h *DepartmentHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentService.ListDepartments(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if departments == nil {
		departments = []*models.Department{}
	}

	utils.JSON(w, http.StatusOK, departments)
}

// UpdateDepartment renames a department or changes its description
func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamDepartmentID)
	if !ok {
		utils.BadRequest(w, "Invalid department ID", nil)
		return
	}

	// Decode and validate the request body
	var req models.UpdateDepartmentRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	department, err := h.departmentService.UpdateDepartment(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, department)
}

// DeleteDepartment removes an empty department
func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamDepartmentID)
	if !ok {
		utils.BadRequest(w, "Invalid department ID", nil)
		return
	}

	if err := h.departmentService.DeleteDepartment(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}

// CreateSector registers a new sector inside a department
func (h *DepartmentHandler) CreateSector(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.CreateSectorRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	sector, err := h.departmentService.CreateSector(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusCreated, sector)
}

// GetSector retrieves a sector by ID
func (h *DepartmentHandler) GetSector(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamSectorID)
	if !ok {
		utils.BadRequest(w, "Invalid sector ID", nil)
		return
	}

	sector, err := h.departmentService.GetSectorByID(r.Context(), id)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, sector)
}

// ListSectors returns sectors, optionally scoped to one department via
// the department_id query parameter.
func (h *DepartmentHandler) ListSectors(w http.ResponseWriter, r *http.Request) {
	var departmentID *int64
	if raw := r.URL.Query().Get(constants.QueryParamDepartmentID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.BadRequest(w, "Invalid department ID", nil)
			return
		}
		departmentID = &id
	}

	sectors, err := h.departmentService.ListSectors(r.Context(), departmentID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if sectors == nil {
		sectors = []*models.Sector{}
	}

	utils.JSON(w, http.StatusOK, sectors)
}

// UpdateSector renames a sector
func (h *DepartmentHandler) UpdateSector(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamSectorID)
	if !ok {
		utils.BadRequest(w, "Invalid sector ID", nil)
		return
	}

	// Decode and validate the request body
	var req models.UpdateSectorRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	sector, err := h.departmentService.UpdateSector(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, sector)
}

// DeleteSector removes a sector with no staff or activities
func (h *DepartmentHandler) DeleteSector(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, constants.ParamSectorID)
	if !ok {
		utils.BadRequest(w, "Invalid sector ID", nil)
		return
	}

	if err := h.departmentService.DeleteSector(r.Context(), id); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.NoContent(w)
}

// parseIDParam extracts and parses a numeric URL path parameter.
func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}
