package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"notehub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NoteCount int64  `json:"count"`
}

type pageInfo struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
}

func TestCategories_CRUD(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, _ := helpers.CreateAndLoginUser(t, ts, tx, "Organizer", helpers.UniqueEmail("organizer"), "password123")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/categories", pair.AccessToken, map[string]interface{}{"name": "inbox"})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var created categoryResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "inbox", created.Name)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/categories/"+created.ID, pair.AccessToken, map[string]interface{}{"name": "archive"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	var renamed categoryResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &renamed))
	assert.Equal(t, "archive", renamed.Name)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/categories/"+created.ID, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+created.ID, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCategories_DuplicateNamePerOwner(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pairA, _ := helpers.CreateAndLoginUser(t, ts, tx, "First", helpers.UniqueEmail("cat-a"), "password123")
	pairB, _ := helpers.CreateAndLoginUser(t, ts, tx, "Second", helpers.UniqueEmail("cat-b"), "password123")

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/categories", pairA.AccessToken, map[string]interface{}{"name": "shared-name"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// Same owner, same name: rejected.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/categories", pairA.AccessToken, map[string]interface{}{"name": "shared-name"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "category with name 'shared-name' already exist")

	// Different owner, same name: fine.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/categories", pairB.AccessToken, map[string]interface{}{"name": "shared-name"})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
}

func TestCategories_NoteCount(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Counter", helpers.UniqueEmail("counter"), "password123")
	category := helpers.CreateCategory(t, tx, "counted", user.ID)

	for i := 0; i < 3; i++ {
		helpers.CreateNote(t, tx, fmt.Sprintf("note %d", i), "body", user.ID, &category.ID)
	}
	helpers.CreateNote(t, tx, "uncategorized", "body", user.ID, nil)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+category.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got categoryResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &got))
	assert.Equal(t, int64(3), got.NoteCount)
}

func TestCategories_NestedNotesPagination(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Paginator", helpers.UniqueEmail("paginator"), "password123")
	category := helpers.CreateCategory(t, tx, "big", user.ID)

	for i := 0; i < 25; i++ {
		helpers.CreateNote(t, tx, fmt.Sprintf("paged note %02d", i), "body", user.ID, &category.ID)
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+category.ID+"/notes?page=2&limit=10", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var page struct {
		Info pageInfo          `json:"info"`
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))

	assert.Equal(t, int64(25), page.Info.Total)
	assert.Equal(t, 2, page.Info.CurrentPage)
	assert.Equal(t, 3, page.Info.LastPage)
	assert.Equal(t, 10, page.Info.PerPage)
	require.NotNil(t, page.Info.NextPage)
	assert.Equal(t, 3, *page.Info.NextPage)
	require.NotNil(t, page.Info.PrevPage)
	assert.Equal(t, 1, *page.Info.PrevPage)
	assert.Len(t, page.Data, 10)

	// The last page holds the remainder and has no next page.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+category.ID+"/notes?page=3&limit=10", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	assert.Len(t, page.Data, 5)
	assert.Nil(t, page.Info.NextPage)
}

func TestCategories_ListDefaultsOnBadParams(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Defaulter", helpers.UniqueEmail("defaulter"), "password123")
	helpers.CreateCategory(t, tx, "solo", user.ID)

	// Non-numeric page/limit fall back to page 1, limit 20.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories?page=abc&limit=xyz", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var page struct {
		Info pageInfo `json:"info"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	assert.Equal(t, 1, page.Info.CurrentPage)
	assert.Equal(t, 20, page.Info.PerPage)

	// Limit is capped at 100.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories?limit=500", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	assert.Equal(t, 100, page.Info.PerPage)
}

func TestCategories_SortByName(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Sorter", helpers.UniqueEmail("sorter"), "password123")
	helpers.CreateCategory(t, tx, "bravo", user.ID)
	helpers.CreateCategory(t, tx, "alpha", user.ID)
	helpers.CreateCategory(t, tx, "charlie", user.ID)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories?sortBy=name,desc", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var page struct {
		Data []categoryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	require.Len(t, page.Data, 3)
	assert.Equal(t, "charlie", page.Data[0].Name)
	assert.Equal(t, "alpha", page.Data[2].Name)
}

func TestCategories_CrossUserIsolation(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, userA := helpers.CreateAndLoginUser(t, ts, tx, "Owner", helpers.UniqueEmail("cat-owner"), "password123")
	pairB, _ := helpers.CreateAndLoginUser(t, ts, tx, "Outsider", helpers.UniqueEmail("cat-outsider"), "password123")

	category := helpers.CreateCategory(t, tx, "secret", userA.ID)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+category.ID, pairB.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+category.ID+"/notes", pairB.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories", pairB.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, "secret")
}
