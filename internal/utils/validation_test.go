package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

type loginPayload struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
}

type registrationPayload struct {
	NationalID string `json:"national_id" validate:"required,national_id"`
	Email      string `json:"email" validate:"required,email"`
}

func newJSONRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "Valid body",
			body:    `{"identifier": "user@example.com", "password": "longenough"}`,
			wantErr: false,
		},
		{
			name:    "Empty body",
			body:    ``,
			wantErr: true,
		},
		{
			name:    "Malformed JSON",
			body:    `{"identifier": `,
			wantErr: true,
		},
		{
			name:    "Unknown field",
			body:    `{"identifier": "x", "password": "longenough", "extra": true}`,
			wantErr: true,
		},
		{
			name:    "Wrong type",
			body:    `{"identifier": 42, "password": "longenough"}`,
			wantErr: true,
		},
		{
			name:    "Multiple JSON objects",
			body:    `{"identifier": "x", "password": "longenough"}{"again": true}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload loginPayload
			err := utils.DecodeJSON(newJSONRequest(tt.body), &payload)

			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		wantErr bool
	}{
		{
			name:    "Valid payload",
			payload: &loginPayload{Identifier: "user@example.com", Password: "longenough"},
			wantErr: false,
		},
		{
			name:    "Missing required field",
			payload: &loginPayload{Password: "longenough"},
			wantErr: true,
		},
		{
			name:    "Password too short",
			payload: &loginPayload{Identifier: "user@example.com", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateStruct(tt.payload)

			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !utils.IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	err := utils.ValidateStruct(&loginPayload{})

	if err == nil {
		t.Fatal("ValidateStruct() error = nil, want error")
	}

	appErr := utils.ParseError(err)
	if appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", appErr.StatusCode, http.StatusBadRequest)
	}
	if len(appErr.Details) != 2 {
		t.Errorf("Details has %d entries, want 2", len(appErr.Details))
	}
}

func TestNationalIDValidation(t *testing.T) {
	tests := []struct {
		name       string
		nationalID string
		wantErr    bool
	}{
		{
			name:       "Plain digits",
			nationalID: "12345678901",
			wantErr:    false,
		},
		{
			name:       "Formatted with punctuation",
			nationalID: "123.456.789-01",
			wantErr:    false,
		},
		{
			name:       "Too short",
			nationalID: "123456",
			wantErr:    true,
		},
		{
			name:       "Too long",
			nationalID: "123456789012345",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := &registrationPayload{
				NationalID: tt.nationalID,
				Email:      "user@example.com",
			}

			err := utils.ValidateStruct(payload)

			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("Valid request", func(t *testing.T) {
		var payload loginPayload
		err := utils.DecodeAndValidate(newJSONRequest(`{"identifier": "user@example.com", "password": "longenough"}`), &payload)

		if err != nil {
			t.Errorf("DecodeAndValidate() error = %v, want nil", err)
		}
		if payload.Identifier != "user@example.com" {
			t.Errorf("Identifier = %q, want %q", payload.Identifier, "user@example.com")
		}
	})

	t.Run("Decode error reported before validation", func(t *testing.T) {
		var payload loginPayload
		err := utils.DecodeAndValidate(newJSONRequest(`not json`), &payload)

		if err == nil {
			t.Fatal("DecodeAndValidate() error = nil, want error")
		}
	})

	t.Run("Validation error after decode", func(t *testing.T) {
		var payload loginPayload
		err := utils.DecodeAndValidate(newJSONRequest(`{"identifier": "user@example.com", "password": "short"}`), &payload)

		if !utils.IsValidationError(err) {
			t.Errorf("expected a validation error, got %v", err)
		}
	})
}

func TestIsValidEmail(t *testing.T) {
	if !utils.IsValidEmail("user@example.com") {
		t.Error("IsValidEmail() = false for a valid address")
	}
	if utils.IsValidEmail("not-an-email") {
		t.Error("IsValidEmail() = true for an invalid address")
	}
}
