package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_authApi_login(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name     string
		body     LoginRequest
		wantCode int
	}{
		{"student ok", LoginRequest{Role: "student", Username: "230103009", Password: "1234"}, http.StatusOK},
		{"teacher ok", LoginRequest{Role: "teacher", Username: "mehmet.ogretmen", Password: "teacher123"}, http.StatusOK},
		{"wrong password", LoginRequest{Role: "student", Username: "230103009", Password: "12345"}, http.StatusBadRequest},
		{"password is case-sensitive", LoginRequest{Role: "teacher", Username: "mehmet.ogretmen", Password: "TEACHER123"}, http.StatusBadRequest},
		{"unknown username", LoginRequest{Role: "student", Username: "999999999", Password: "1234"}, http.StatusBadRequest},
		{"role mismatch", LoginRequest{Role: "teacher", Username: "230103009", Password: "1234"}, http.StatusBadRequest},
		{"unknown role", LoginRequest{Role: "admin", Username: "230103009", Password: "1234"}, http.StatusBadRequest},
		{"empty fields", LoginRequest{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request(t, http.MethodPost, "/v1/auth/login", "", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode == http.StatusOK {
				assert.Contains(t, rec.Body.String(), "token")
			}
		})
	}
}

func Test_authApi_roleScoping(t *testing.T) {
	app := newTestApp(t)

	studentToken := app.login(t, "student", "230103009", "1234")
	teacherToken := app.login(t, "teacher", "mehmet.ogretmen", "teacher123")

	t.Run("student token cannot reach teacher panel", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/teacher/panel", studentToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("teacher token cannot reach student panel", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/student/panel", teacherToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/student/panel", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
