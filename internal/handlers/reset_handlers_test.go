package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// Mock ResetService that implements the interface methods required by ResetHandler
type MockResetService struct {
	RequestFunc             func(ctx context.Context, req *models.CreateResetRequest) error
	ListPendingFunc         func(ctx context.Context) ([]*models.ResetRequestSummary, error)
	ApproveFunc             func(ctx context.Context, requestID, adminID int64) (*models.ApproveResetResponse, error)
	CleanupDeadRequestsFunc func(ctx context.Context, before time.Time) (int64, error)
}

func (m *MockResetService) Request(ctx context.Context, req *models.CreateResetRequest) error {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, req)
	}
	return nil
}

func (m *MockResetService) ListPending(ctx context.Context) ([]*models.ResetRequestSummary, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return []*models.ResetRequestSummary{}, nil
}

func (m *MockResetService) Approve(ctx context.Context, requestID, adminID int64) (*models.ApproveResetResponse, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, requestID, adminID)
	}
	return &models.ApproveResetResponse{
		RequestID:  requestID,
		UserID:     1,
		Credential: "ABCD1234",
		ExpiresAt:  time.Now().Add(12 * time.Hour),
	}, nil
}

func (m *MockResetService) CleanupDeadRequests(ctx context.Context, before time.Time) (int64, error) {
	if m.CleanupDeadRequestsFunc != nil {
		return m.CleanupDeadRequestsFunc(ctx, before)
	}
	return 0, nil
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestRequestReset tests the RequestReset handler
func TestRequestReset(t *testing.T) {
	testCases := []struct {
		name             string
		requestBody      map[string]interface{}
		mockSetup        func(*MockResetService)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "Successful Request",
			requestBody: map[string]interface{}{
				"national_id": "12345678901",
				"email":       "staff@example.com",
			},
			expectedStatus: http.StatusAccepted,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)
				data, ok := response["data"].(map[string]interface{})
				if !ok {
					t.Fatalf("Expected data object in response")
				}
				if msg, _ := data["message"].(string); msg != constants.MsgResetRequestAccepted {
					t.Errorf("Expected message '%s', got %s", constants.MsgResetRequestAccepted, msg)
				}
			},
		},
		{
			// Unknown identities receive the same acknowledgement as known
			// ones, so the endpoint cannot be used to probe for accounts.
			name: "Unknown Identity Gets Same Acknowledgement",
			requestBody: map[string]interface{}{
				"national_id": "99999999999",
				"email":       "nobody@example.com",
			},
			mockSetup: func(mock *MockResetService) {
				mock.RequestFunc = func(ctx context.Context, req *models.CreateResetRequest) error {
					return nil
				}
			},
			expectedStatus: http.StatusAccepted,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)
				data, ok := response["data"].(map[string]interface{})
				if !ok {
					t.Fatalf("Expected data object in response")
				}
				if msg, _ := data["message"].(string); msg != constants.MsgResetRequestAccepted {
					t.Errorf("Expected message '%s', got %s", constants.MsgResetRequestAccepted, msg)
				}
			},
		},
		{
			name: "Request Already Pending",
			requestBody: map[string]interface{}{
				"national_id": "12345678901",
				"email":       "staff@example.com",
			},
			mockSetup: func(mock *MockResetService) {
				mock.RequestFunc = func(ctx context.Context, req *models.CreateResetRequest) error {
					return utils.NewConflictError(constants.MsgResetRequestPending)
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Missing Email",
			requestBody: map[string]interface{}{
				"national_id": "12345678901",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockResetService := new(MockResetService)
			if tc.mockSetup != nil {
				tc.mockSetup(mockResetService)
			}
			handler := NewResetHandler(mockResetService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-requests", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.RequestReset(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
			if tc.validateResponse != nil {
				tc.validateResponse(t, rec)
			}
		})
	}
}

// TestListPendingResets tests the ListPending handler
func TestListPendingResets(t *testing.T) {
	t.Run("Returns Pending Requests", func(t *testing.T) {
		mockResetService := new(MockResetService)
		mockResetService.ListPendingFunc = func(ctx context.Context) ([]*models.ResetRequestSummary, error) {
			return []*models.ResetRequestSummary{
				{
					ID:          7,
					UserID:      1,
					NationalID:  "12345678901",
					Email:       "staff@example.com",
					DisplayName: "Test Staff",
					CreatedAt:   time.Now().Add(-time.Hour),
				},
			}, nil
		}
		handler := NewResetHandler(mockResetService)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/reset-requests", nil)
		rec := httptest.NewRecorder()

		handler.ListPending(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
		}

		response := decodeResponse(t, rec)
		data, ok := response["data"].([]interface{})
		if !ok {
			t.Fatalf("Expected data array in response")
		}
		if len(data) != 1 {
			t.Fatalf("Expected 1 pending request, got %d", len(data))
		}
		summary := data[0].(map[string]interface{})
		if email, _ := summary["email"].(string); email != "staff@example.com" {
			t.Errorf("Expected owner email in summary, got %s", email)
		}
	})

	t.Run("Empty List Serializes As Array", func(t *testing.T) {
		mockResetService := new(MockResetService)
		mockResetService.ListPendingFunc = func(ctx context.Context) ([]*models.ResetRequestSummary, error) {
			return nil, nil
		}
		handler := NewResetHandler(mockResetService)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/reset-requests", nil)
		rec := httptest.NewRecorder()

		handler.ListPending(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
		}

		response := decodeResponse(t, rec)
		if _, ok := response["data"].([]interface{}); !ok {
			t.Errorf("Expected empty data array, got %T", response["data"])
		}
	})
}

// TestApproveReset tests the Approve handler
func TestApproveReset(t *testing.T) {
	testCases := []struct {
		name             string
		requestID        string
		authenticated    bool
		mockSetup        func(*MockResetService)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:          "Successful Approval",
			requestID:     "7",
			authenticated: true,
			mockSetup: func(mock *MockResetService) {
				mock.ApproveFunc = func(ctx context.Context, requestID, adminID int64) (*models.ApproveResetResponse, error) {
					if requestID != 7 {
						t.Errorf("Expected request ID 7, got %d", requestID)
					}
					if adminID != 42 {
						t.Errorf("Expected admin ID 42, got %d", adminID)
					}
					return &models.ApproveResetResponse{
						RequestID:  requestID,
						UserID:     1,
						Credential: "ABCD1234",
						ExpiresAt:  time.Now().Add(12 * time.Hour),
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				response := decodeResponse(t, rec)
				data, ok := response["data"].(map[string]interface{})
				if !ok {
					t.Fatalf("Expected data object in response")
				}
				if credential, _ := data["credential"].(string); credential != "ABCD1234" {
					t.Errorf("Expected plaintext credential in response, got %s", credential)
				}
			},
		},
		{
			name:           "Invalid Request ID",
			requestID:      "not-a-number",
			authenticated:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Not Authenticated",
			requestID:      "7",
			authenticated:  false,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "Already Approved",
			requestID:     "7",
			authenticated: true,
			mockSetup: func(mock *MockResetService) {
				mock.ApproveFunc = func(ctx context.Context, requestID, adminID int64) (*models.ApproveResetResponse, error) {
					return nil, utils.NewConflictError(constants.MsgResetAlreadyApproved)
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:          "Request Not Found",
			requestID:     "404",
			authenticated: true,
			mockSetup: func(mock *MockResetService) {
				mock.ApproveFunc = func(ctx context.Context, requestID, adminID int64) (*models.ApproveResetResponse, error) {
					return nil, utils.NewNotFoundError("ResetRequest", requestID)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockResetService := new(MockResetService)
			if tc.mockSetup != nil {
				tc.mockSetup(mockResetService)
			}
			handler := NewResetHandler(mockResetService)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/reset-requests/"+tc.requestID+"/approve", nil)
			req = withURLParam(req, constants.ParamRequestID, tc.requestID)
			if tc.authenticated {
				req = withAuthenticatedUser(req, 42)
			}
			rec := httptest.NewRecorder()

			handler.Approve(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
			if tc.validateResponse != nil {
				tc.validateResponse(t, rec)
			}
		})
	}
}
