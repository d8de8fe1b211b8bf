package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/models"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := []models.Product{{ID: "p1", Name: "Vestido", Images: []string{}}}

	n, err := WriteJSON(w, data, http.StatusOK)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}

	expected, _ := json.Marshal(data)
	if w.Body.String() != string(expected) {
		t.Errorf("expected body %s, got %s", expected, w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteJSON_UserNeverCarriesHash(t *testing.T) {
	w := httptest.NewRecorder()
	user := models.User{ID: "u1", Email: "ana@x.com", PasswordHash: "$2a$10$secret"}

	_, err := WriteJSON(w, user, http.StatusOK)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if strings.Contains(w.Body.String(), "$2a$10$secret") || strings.Contains(w.Body.String(), "password") {
		t.Errorf("password hash leaked into body: %s", w.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, "invalid credentials", http.StatusUnauthorized)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if w.Body.String() != `{"error":"invalid credentials"}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantEOF bool
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Ana","email":"ana@x.com","message":"hi"}`},
		{name: "unknown fields ignored", body: `{"name":"Ana","role":"admin","message":"hi"}`},
		{name: "empty body", body: "", wantEOF: true, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"name":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			var dst models.ContactInput

			err := DecodeJSON(r, &dst)

			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got %v", tt.wantErr, err)
			}
			if tt.wantEOF && !errors.Is(err, io.EOF) {
				t.Errorf("expected io.EOF, got %v", err)
			}
			if !tt.wantErr && dst.Name != "Ana" {
				t.Errorf("expected name Ana, got %q", dst.Name)
			}
		})
	}
}
