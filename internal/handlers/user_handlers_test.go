package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// Mock UserService that implements the interface methods required by UserHandler
type MockUserService struct {
	CreateUserFunc       func(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetUserByIDFunc      func(ctx context.Context, id int64) (*models.User, error)
	ListUsersFunc        func(ctx context.Context, page, pageSize int) ([]*models.User, int, error)
	UpdateUserFunc       func(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error)
	UpdateUserStatusFunc func(ctx context.Context, id int64, status models.AccountStatus) error
	DeleteUserFunc       func(ctx context.Context, id int64) error
}

func (m *MockUserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	return &models.User{ID: 1, NationalID: req.NationalID, Email: req.Email, DisplayName: req.DisplayName}, nil
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return &models.User{ID: id, Email: "staff@example.com", DisplayName: "Test Staff"}, nil
}

func (m *MockUserService) ListUsers(ctx context.Context, page, pageSize int) ([]*models.User, int, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, page, pageSize)
	}
	return []*models.User{{ID: 1, Email: "staff@example.com"}}, 1, nil
}

func (m *MockUserService) UpdateUser(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, req)
	}
	return &models.User{ID: id, Email: "staff@example.com"}, nil
}

func (m *MockUserService) UpdateUserStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	if m.UpdateUserStatusFunc != nil {
		return m.UpdateUserStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

// TestCreateUser tests the CreateUser handler
func TestCreateUser(t *testing.T) {
	testCases := []struct {
		name           string
		requestBody    map[string]interface{}
		mockSetup      func(*MockUserService)
		expectedStatus int
	}{
		{
			name: "Successful Creation",
			requestBody: map[string]interface{}{
				"national_id":  "12345678901",
				"email":        "new@example.com",
				"display_name": "New Staff",
				"password":     "password123",
				"role":         "staff",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate National ID",
			requestBody: map[string]interface{}{
				"national_id":  "12345678901",
				"email":        "new@example.com",
				"display_name": "New Staff",
				"password":     "password123",
				"role":         "staff",
			},
			mockSetup: func(mock *MockUserService) {
				mock.CreateUserFunc = func(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
					return nil, utils.NewDuplicateError("User", "national_id", req.NationalID)
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Invalid National ID",
			requestBody: map[string]interface{}{
				"national_id":  "123",
				"email":        "new@example.com",
				"display_name": "New Staff",
				"password":     "password123",
				"role":         "staff",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockUserService := new(MockUserService)
			if tc.mockSetup != nil {
				tc.mockSetup(mockUserService)
			}
			handler := NewUserHandler(mockUserService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.CreateUser(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}

// TestGetUser tests the GetUser handler
func TestGetUser(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockUserService := new(MockUserService)
		handler := NewUserHandler(mockUserService)

		req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
		req = withURLParam(req, constants.ParamUserID, "1")
		rec := httptest.NewRecorder()

		handler.GetUser(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		mockUserService := new(MockUserService)
		handler := NewUserHandler(mockUserService)

		req := httptest.NewRequest(http.MethodGet, "/api/users/abc", nil)
		req = withURLParam(req, constants.ParamUserID, "abc")
		rec := httptest.NewRecorder()

		handler.GetUser(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		mockUserService := new(MockUserService)
		mockUserService.GetUserByIDFunc = func(ctx context.Context, id int64) (*models.User, error) {
			return nil, utils.NewNotFoundError("User", id)
		}
		handler := NewUserHandler(mockUserService)

		req := httptest.NewRequest(http.MethodGet, "/api/users/999", nil)
		req = withURLParam(req, constants.ParamUserID, "999")
		rec := httptest.NewRecorder()

		handler.GetUser(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

// TestGetCurrentUser tests the GetCurrentUser handler
func TestGetCurrentUser(t *testing.T) {
	t.Run("Authenticated", func(t *testing.T) {
		mockUserService := new(MockUserService)
		mockUserService.GetUserByIDFunc = func(ctx context.Context, id int64) (*models.User, error) {
			if id != 42 {
				t.Errorf("Expected user ID 42, got %d", id)
			}
			return &models.User{ID: id, Email: "me@example.com"}, nil
		}
		handler := NewUserHandler(mockUserService)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req = withAuthenticatedUser(req, 42)
		rec := httptest.NewRecorder()

		handler.GetCurrentUser(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("Not Authenticated", func(t *testing.T) {
		handler := NewUserHandler(new(MockUserService))

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		rec := httptest.NewRecorder()

		handler.GetCurrentUser(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rec.Code)
		}
	})
}

// TestListUsers tests the ListUsers handler
func TestListUsers(t *testing.T) {
	mockUserService := new(MockUserService)
	mockUserService.ListUsersFunc = func(ctx context.Context, page, pageSize int) ([]*models.User, int, error) {
		if page != 2 || pageSize != 10 {
			t.Errorf("Expected page 2 size 10, got page %d size %d", page, pageSize)
		}
		return []*models.User{{ID: 11, Email: "staff@example.com"}}, 25, nil
	}
	handler := NewUserHandler(mockUserService)

	req := httptest.NewRequest(http.MethodGet, "/api/users?page=2&page_size=10", nil)
	rec := httptest.NewRecorder()

	handler.ListUsers(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	response := decodeResponse(t, rec)
	meta, ok := response["meta"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected meta object in response")
	}
	if totalItems, _ := meta["total_items"].(float64); totalItems != 25 {
		t.Errorf("Expected total_items 25, got %v", totalItems)
	}
	if totalPages, _ := meta["total_pages"].(float64); totalPages != 3 {
		t.Errorf("Expected total_pages 3, got %v", totalPages)
	}
}

// TestUpdateUserStatus tests the UpdateUserStatus handler
func TestUpdateUserStatus(t *testing.T) {
	testCases := []struct {
		name           string
		requestBody    map[string]interface{}
		mockSetup      func(*MockUserService)
		expectedStatus int
	}{
		{
			name: "Activate Account",
			requestBody: map[string]interface{}{
				"status": "active",
			},
			mockSetup: func(mock *MockUserService) {
				mock.UpdateUserStatusFunc = func(ctx context.Context, id int64, status models.AccountStatus) error {
					if status != models.StatusActive {
						t.Errorf("Expected status active, got %s", status)
					}
					return nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unknown Status",
			requestBody: map[string]interface{}{
				"status": "frozen",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockUserService := new(MockUserService)
			if tc.mockSetup != nil {
				tc.mockSetup(mockUserService)
			}
			handler := NewUserHandler(mockUserService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}

			req := httptest.NewRequest(http.MethodPut, "/api/users/1/status", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = withURLParam(req, constants.ParamUserID, "1")
			rec := httptest.NewRecorder()

			handler.UpdateUserStatus(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}

// TestDeleteUser tests the DeleteUser handler
func TestDeleteUser(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
	req = withURLParam(req, constants.ParamUserID, "1")
	rec := httptest.NewRecorder()

	handler.DeleteUser(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}
