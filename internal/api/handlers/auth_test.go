package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/devconnect/devconnect-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"name":     "Ann",
				"email":    "ann@x.com",
				"password": "secret1",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.TokenResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotEmpty(t, result.Token)
			},
		},
		{
			name: "missing name",
			request: map[string]string{
				"email":    "noname@x.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result struct {
					Errors []struct {
						Msg string `json:"msg"`
					} `json:"errors"`
				}
				testutil.AssertJSONResponse(t, resp, &result)
				require.Len(t, result.Errors, 1)
				assert.Equal(t, "Name is required", result.Errors[0].Msg)
			},
		},
		{
			name: "short password and bad email enumerated together",
			request: map[string]string{
				"name":     "Bob",
				"email":    "not-an-email",
				"password": "abc",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result struct {
					Errors []struct {
						Msg string `json:"msg"`
					} `json:"errors"`
				}
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Len(t, result.Errors, 2)
			},
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"name":     "Other",
				"email":    "existing@x.com",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@x.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "User already exists")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/users"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@x.com").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    user.Email,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    user.Email,
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid Credentials",
		},
		{
			name: "unknown email",
			request: map[string]string{
				"email":    "ghost@x.com",
				"password": "whatever1",
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid Credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/auth"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedBody != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedBody)
			} else {
				var result testutil.TokenResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotEmpty(t, result.Token)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithName("Ann").
		BuildAndAuthenticate(t, ts)

	t.Run("returns the authenticated user without the password", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/auth"), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result map[string]interface{}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, user.ID.String(), result["id"])
		assert.Equal(t, "Ann", result["name"])
		assert.NotContains(t, result, "password")
		assert.NotContains(t, result, "passwordHash")
	})

	t.Run("no token", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/auth"), "", nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "No token, authorization denied")
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/auth"), "not-a-valid-token", nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Token is not valid")
	})
}
