package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devconnect/devconnect-api/internal/service"
	"github.com/devconnect/devconnect-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileResponse is the slice of the profile JSON the tests care about.
type profileResponse struct {
	ID     string   `json:"id"`
	UserID string   `json:"userId"`
	Status string   `json:"status"`
	Skills []string `json:"skills"`
	User   *struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	} `json:"user"`
	Experience []struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Company string `json:"company"`
	} `json:"experience"`
	Education []struct {
		ID     string `json:"id"`
		School string `json:"school"`
	} `json:"education"`
}

func TestProfileFlow_RegisterUpsertGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithName("Ann").
		WithEmail("ann@x.com").
		WithPassword("secret1").
		BuildAndAuthenticate(t, ts)

	// Create the profile.
	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/profile"), token, map[string]string{
		"status": "Developer",
		"skills": "js, go",
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var created profileResponse
	testutil.AssertJSONResponse(t, resp, &created)
	assert.Equal(t, []string{"js", "go"}, created.Skills)
	assert.Equal(t, "Developer", created.Status)

	// Read it back enriched with the owner.
	resp = testutil.DoJSON(t, http.MethodGet, ts.APIURL("/profile/me"), token, nil)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var fetched profileResponse
	testutil.AssertJSONResponse(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	require.NotNil(t, fetched.User)
	assert.Equal(t, "Ann", fetched.User.Name)
	assert.NotEmpty(t, fetched.User.Avatar)
}

func TestProfileHandler_Upsert_Validation(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/profile"), token, map[string]string{})
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

	var result struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	require.Len(t, result.Errors, 2)
	msgs := []string{result.Errors[0].Msg, result.Errors[1].Msg}
	assert.Contains(t, msgs, "Status is required")
	assert.Contains(t, msgs, "Skills is required")
}

func TestProfileHandler_Me_NoProfile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/profile/me"), token, nil)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "There is no profile for this user")
}

func TestProfileHandler_PublicRoutes(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().WithName("Ann").BuildAndAuthenticate(t, ts)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/profile"), token, map[string]string{
		"status": "Developer",
		"skills": "go",
	})
	resp.Body.Close()

	t.Run("list all profiles without a token", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/profile"), "", nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var profiles []profileResponse
		testutil.AssertJSONResponse(t, resp, &profiles)
		require.Len(t, profiles, 1)
		require.NotNil(t, profiles[0].User)
		assert.Equal(t, "Ann", profiles[0].User.Name)
	})

	t.Run("get profile by user id", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/profile/user/"+user.ID.String()), "", nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var profile profileResponse
		testutil.AssertJSONResponse(t, resp, &profile)
		assert.Equal(t, user.ID.String(), profile.UserID)
	})

	t.Run("unknown user id", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/profile/user/00000000-0000-0000-0000-000000000000"), "", nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Profile not found")
	})
}

func TestProfileHandler_ExperienceLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/profile"), token, map[string]string{
		"status": "Developer",
		"skills": "go",
	})
	resp.Body.Close()

	// Add two entries; the second must end up first.
	resp = testutil.DoJSON(t, http.MethodPut, ts.APIURL("/profile/experience"), token, map[string]string{
		"title":   "Junior Dev",
		"company": "Acme",
		"from":    "2019-01-01",
	})
	var afterFirst profileResponse
	testutil.AssertJSONResponse(t, resp, &afterFirst)
	resp.Body.Close()
	require.Len(t, afterFirst.Experience, 1)
	firstID := afterFirst.Experience[0].ID

	resp = testutil.DoJSON(t, http.MethodPut, ts.APIURL("/profile/experience"), token, map[string]string{
		"title":   "Senior Dev",
		"company": "Globex",
		"from":    "2021-06-01",
	})
	var afterSecond profileResponse
	testutil.AssertJSONResponse(t, resp, &afterSecond)
	resp.Body.Close()
	require.Len(t, afterSecond.Experience, 2)
	assert.Equal(t, "Senior Dev", afterSecond.Experience[0].Title)

	// Missing required fields are enumerated.
	resp = testutil.DoJSON(t, http.MethodPut, ts.APIURL("/profile/experience"), token, map[string]string{})
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	resp.Body.Close()

	// Remove the first entry; only the second remains.
	resp = testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/profile/experience/"+firstID), token, nil)
	var afterRemove profileResponse
	testutil.AssertJSONResponse(t, resp, &afterRemove)
	resp.Body.Close()
	require.Len(t, afterRemove.Experience, 1)
	assert.Equal(t, "Senior Dev", afterRemove.Experience[0].Title)

	// Unknown entry id is a no-op that still returns the profile.
	resp = testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/profile/experience/does-not-exist"), token, nil)
	var afterNoop profileResponse
	testutil.AssertJSONResponse(t, resp, &afterNoop)
	resp.Body.Close()
	assert.Len(t, afterNoop.Experience, 1)
}

func TestProfileHandler_EducationLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/profile"), token, map[string]string{
		"status": "Student",
		"skills": "go",
	})
	resp.Body.Close()

	resp = testutil.DoJSON(t, http.MethodPut, ts.APIURL("/profile/education"), token, map[string]string{
		"school":       "State U",
		"degree":       "BSc",
		"fieldofstudy": "CS",
		"from":         "2015-09-01",
	})
	var profile profileResponse
	testutil.AssertJSONResponse(t, resp, &profile)
	resp.Body.Close()
	require.Len(t, profile.Education, 1)
	eduID := profile.Education[0].ID

	resp = testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/profile/education/"+eduID), token, nil)
	var afterRemove profileResponse
	testutil.AssertJSONResponse(t, resp, &afterRemove)
	resp.Body.Close()
	assert.Empty(t, afterRemove.Education)
}

func TestProfileHandler_DeleteAccount(t *testing.T) {
	ts := testutil.NewTestServer(t)

	builder := testutil.NewUserBuilder().WithEmail("gone@x.com").WithPassword("secret1")
	_, token := builder.BuildAndAuthenticate(t, ts)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/profile"), token, map[string]string{
		"status": "Developer",
		"skills": "go",
	})
	resp.Body.Close()

	resp = testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/profile"), token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	// The user is gone along with the profile, so logging in fails.
	body, _ := json.Marshal(map[string]string{"email": "gone@x.com", "password": "secret1"})
	loginResp, err := http.Post(ts.APIURL("/auth"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	testutil.AssertErrorResponse(t, loginResp, http.StatusBadRequest, "Invalid Credentials")

	// Deleting again still reports success.
	resp = testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/profile"), token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestProfileHandler_GithubRepos(t *testing.T) {
	ts := testutil.NewTestServer(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/anna/repos" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]service.GithubRepo{{ID: 1, Name: "dotfiles"}})
	}))
	defer upstream.Close()

	// The service reads the base URL from the shared config at call time.
	ts.Config.GithubAPIBaseURL = upstream.URL

	t.Run("known user", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/profile/github/anna"), "", nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var repos []service.GithubRepo
		testutil.AssertJSONResponse(t, resp, &repos)
		require.Len(t, repos, 1)
		assert.Equal(t, "dotfiles", repos[0].Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/profile/github/ghost"), "", nil)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "No Github profile found")
	})
}
