package apihandlers

import (
	"encoding/json"
	"net/http"
	"testing"

	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilesAPIOwnership(t *testing.T) {
	profileBody := func(name string) map[string]interface{} {
		return map[string]interface{}{
			"nombreCompleto": name, "pin": "1111", "avatar": "a.png", "edad": 8,
		}
	}

	createProfile := func(t *testing.T, api *testAPI, token string, name string) userTypes.RestrictedProfile {
		t.Helper()
		w := api.do(t, http.MethodPost, "/api/perfiles", profileBody(name), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var p userTypes.RestrictedProfile
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		return p
	}

	t.Run("create for another account", func(t *testing.T) {
		api := newTestAPI(t)
		_, ownerID := api.sessionToken(t)
		otherToken, _ := api.sessionToken(t)

		body := profileBody("Kid")
		body["userId"] = ownerID
		w := api.do(t, http.MethodPost, "/api/perfiles", body, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, api.profiles.profiles)
	})

	t.Run("same userId as the session is accepted", func(t *testing.T) {
		api := newTestAPI(t)
		token, accountID := api.sessionToken(t)

		body := profileBody("Kid")
		body["userId"] = accountID
		w := api.do(t, http.MethodPost, "/api/perfiles", body, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		require.Len(t, api.profiles.profiles, 1)
		assert.Equal(t, accountID, api.profiles.profiles[0].OwnerID)
	})

	t.Run("list of another account", func(t *testing.T) {
		api := newTestAPI(t)
		ownerToken, ownerID := api.sessionToken(t)
		createProfile(t, api, ownerToken, "Kid")
		otherToken, _ := api.sessionToken(t)

		w := api.do(t, http.MethodGet, "/api/perfiles?userId="+ownerID, nil, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotContains(t, w.Body.String(), "1111")

		w = api.do(t, http.MethodGet, "/api/perfiles", nil, otherToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("update and delete of another account", func(t *testing.T) {
		api := newTestAPI(t)
		ownerToken, _ := api.sessionToken(t)
		p := createProfile(t, api, ownerToken, "Kid")
		otherToken, _ := api.sessionToken(t)

		w := api.do(t, http.MethodPut, "/api/perfiles/"+p.ID.Hex(), profileBody("Renamed"), otherToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = api.do(t, http.MethodDelete, "/api/perfiles?id="+p.ID.Hex(), nil, otherToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		require.Len(t, api.profiles.profiles, 1)
		assert.Equal(t, "Kid", api.profiles.profiles[0].FullName)

		w = api.do(t, http.MethodDelete, "/api/perfiles?id="+p.ID.Hex(), nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, api.profiles.profiles)
	})

	t.Run("videos for another account", func(t *testing.T) {
		api := newTestAPI(t)
		_, ownerID := api.sessionToken(t)
		otherToken, _ := api.sessionToken(t)

		w := api.do(t, http.MethodPost, "/api/videos", map[string]string{
			"name":       "Clip",
			"youtubeUrl": "https://youtu.be/abc",
			"userId":     ownerID,
		}, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, api.catalog.videos)

		w = api.do(t, http.MethodGet, "/api/videos?userId="+ownerID, nil, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
