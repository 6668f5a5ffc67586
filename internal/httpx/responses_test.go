package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONResult(t *testing.T) {
	w := httptest.NewRecorder()

	JSONResult(w, nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected Content-Type application/json")
	}
	if got := w.Body.String(); got != "{\"success\":true,\"result\":null}\n" {
		t.Errorf("Expected null result to be serialized, got %s", got)
	}
}

func TestJSONMessage(t *testing.T) {
	w := httptest.NewRecorder()

	JSONMessage(w, false, "No changes made")

	var response MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Success || response.Message != "No changes made" {
		t.Errorf("Unexpected response %+v", response)
	}
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/books", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))
	details := []ErrorDetail{
		{Field: "title", Message: "title is required"},
	}

	JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response struct {
		Success bool              `json:"success"`
		Error   ErrorResponseBody `json:"error"`
		Meta    map[string]string `json:"meta"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Success {
		t.Error("Expected success to be false")
	}
	if response.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected error code VALIDATION_ERROR, got %s", response.Error.Code)
	}
	if len(response.Error.Details) != 1 {
		t.Errorf("Expected 1 error detail, got %d", len(response.Error.Details))
	}
	if response.Meta["request_id"] != "req-1" {
		t.Errorf("Expected request id in meta, got %v", response.Meta)
	}
}

func TestText(t *testing.T) {
	w := httptest.NewRecorder()

	Text(w, http.StatusOK, "server is running")

	if w.Body.String() != "server is running" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}
