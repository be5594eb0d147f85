package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTeamHandler_CreateAndList(t *testing.T) {
	env := setupHandlerTestEnv(t)
	acme, adminToken, _, member := seedTenant(t, env, "acme")
	orgHeader := strconv.FormatUint(acme.ID, 10)

	memberProfile := orgProfile(t, env, member.ID, acme.ID)

	w := env.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
		"name":        "Sales",
		"description": "Inbound sales",
		"users":       []uint64{memberProfile.ID},
	}, requestOptions{token: adminToken, org: orgHeader})

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Sales", body["name"])

	w = env.do(t, http.MethodGet, "/api/teams", nil, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	require.Len(t, body["teams"].([]interface{}), 1)
}

func TestTeamHandler_DuplicateNameInOrg(t *testing.T) {
	env := setupHandlerTestEnv(t)
	acme, adminToken, _, _ := seedTenant(t, env, "acme")
	orgHeader := strconv.FormatUint(acme.ID, 10)

	w := env.do(t, http.MethodPost, "/api/teams", map[string]string{
		"name": "Sales",
	}, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/teams", map[string]string{
		"name": "sales",
	}, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestTeamHandler_MemberOutsideOrgRejected(t *testing.T) {
	env := setupHandlerTestEnv(t)
	acme, adminToken, _, _ := seedTenant(t, env, "acme")
	globex, _, _, globexMember := seedTenant(t, env, "globex")
	orgHeader := strconv.FormatUint(acme.ID, 10)

	outside := orgProfile(t, env, globexMember.ID, globex.ID)

	w := env.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
		"name":  "Poachers",
		"users": []uint64{outside.ID},
	}, requestOptions{token: adminToken, org: orgHeader})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeamHandler_TeamsScopedToOrg(t *testing.T) {
	env := setupHandlerTestEnv(t)
	acme, acmeAdmin, _, _ := seedTenant(t, env, "acme")
	globex, globexAdmin, _, _ := seedTenant(t, env, "globex")

	w := env.do(t, http.MethodPost, "/api/teams", map[string]string{
		"name": "Sales",
	}, requestOptions{token: acmeAdmin, org: strconv.FormatUint(acme.ID, 10)})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	teamID := uint64(body["id"].(float64))

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/teams/%d", teamID), nil, requestOptions{
		token: globexAdmin,
		org:   strconv.FormatUint(globex.ID, 10),
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamHandler_GetTeamsAndUsers(t *testing.T) {
	env := setupHandlerTestEnv(t)
	acme, adminToken, _, _ := seedTenant(t, env, "acme")
	orgHeader := strconv.FormatUint(acme.ID, 10)

	w := env.do(t, http.MethodPost, "/api/teams", map[string]string{
		"name": "Sales",
	}, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/teams/users", nil, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Len(t, body["teams"].([]interface{}), 1)
	// Admin and member profiles of the org.
	require.Len(t, body["profiles"].([]interface{}), 2)
}

func TestTeamHandler_UpdateAndDelete(t *testing.T) {
	env := setupHandlerTestEnv(t)
	acme, adminToken, _, _ := seedTenant(t, env, "acme")
	orgHeader := strconv.FormatUint(acme.ID, 10)

	w := env.do(t, http.MethodPost, "/api/teams", map[string]string{
		"name": "Sales",
	}, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	teamID := uint64(body["id"].(float64))

	newName := "Enterprise sales"
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/teams/%d", teamID), map[string]interface{}{
		"name": newName,
	}, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	require.Equal(t, newName, body["name"])

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/teams/%d", teamID), nil, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/teams/%d", teamID), nil, requestOptions{token: adminToken, org: orgHeader})
	require.Equal(t, http.StatusNotFound, w.Code)
}
