package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dshills/formrunner/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formBody = `{
  "form": {
    "formId": "f-42",
    "formTitle": "Admission",
    "version": "2",
    "sections": [
      {"title": "Basics", "fields": [{"fieldId": "name", "type": "text", "label": "Name", "required": true}]}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/"})
}

func TestRegisterUserSuccess(t *testing.T) {
	var got models.User
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-user", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message": "User created"}`))
	})

	res, err := client.RegisterUser(context.Background(), models.User{RollNumber: "RA01", Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "User created", res.Message)
	assert.Equal(t, models.User{RollNumber: "RA01", Name: "Alice"}, got)
}

func TestRegisterUserFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode ErrorCode
		wantMsg  string
	}{
		{"rejected with message", http.StatusBadRequest, `{"message": "Roll number already used"}`, ErrorCodeRejected, "Roll number already used"},
		{"rejected without body", http.StatusConflict, ``, ErrorCodeRejected, "Failed to create user"},
		{"server error non json", http.StatusInternalServerError, `oops`, ErrorCodeServer, "Failed to create user"},
		{"explicit success false", http.StatusOK, `{"success": false, "message": "Registration closed"}`, ErrorCodeRejected, "Registration closed"},
		{"ok but garbage", http.StatusOK, `<html>`, ErrorCodeDecode, "Failed to create user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := client.RegisterUser(context.Background(), models.User{RollNumber: "RA01", Name: "Alice"})
			assert.Nil(t, res)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "register", apiErr.Operation)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMsg, apiErr.UserMessage())
		})
	}
}

func TestRegisterUserEmptySuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res, err := client.RegisterUser(context.Background(), models.User{RollNumber: "RA01", Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestRegisterUserNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.RegisterUser(context.Background(), models.User{RollNumber: "RA01", Name: "Alice"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorCodeNetwork, apiErr.Code)
	assert.NotNil(t, apiErr.Unwrap())
}

func TestFetchFormSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/get-form", r.URL.Path)
		assert.Equal(t, "RA 01&x", r.URL.Query().Get("rollNumber"))
		_, _ = w.Write([]byte(formBody))
	})

	resp, err := client.FetchForm(context.Background(), "RA 01&x")
	require.NoError(t, err)
	assert.Equal(t, "f-42", resp.Form.FormID)
	assert.Equal(t, "Admission", resp.Form.FormTitle)
	require.Len(t, resp.Form.Sections, 1)
	assert.True(t, resp.Form.Sections[0].Fields[0].Required)
}

func TestFetchFormFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode ErrorCode
	}{
		{"not found", http.StatusNotFound, `{"message": "no form"}`, ErrorCodeRejected},
		{"server error", http.StatusBadGateway, ``, ErrorCodeServer},
		{"bad json", http.StatusOK, `{"form": [}`, ErrorCodeDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FetchForm(context.Background(), "RA01")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, "Failed to fetch form", apiErr.UserMessage())
		})
	}
}

func TestFetchFormHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchForm(ctx, "RA01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, client.BaseURL())

	client = NewClient(Config{BaseURL: "http://localhost:8080///"})
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
}
