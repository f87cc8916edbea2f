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

type noteResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	CategoryID *string `json:"categoryId"`
	Category   *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"category"`
	Tags []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
}

func TestNotes_CreateWithCategoryAndTags(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Writer", helpers.UniqueEmail("writer"), "password123")
	category := helpers.CreateCategory(t, tx, "work", user.ID)

	body := map[string]interface{}{
		"title":      "Standup notes",
		"content":    "Discussed the roadmap",
		"categoryId": category.ID,
		"tags":       []string{"meeting", "roadmap"},
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/notes", pair.AccessToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var note noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &note))
	assert.Equal(t, "Standup notes", note.Title)
	require.NotNil(t, note.Category)
	assert.Equal(t, "work", note.Category.Name)
	assert.Len(t, note.Tags, 2)
}

func TestNotes_CreateRejectsFifthTag(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, _ := helpers.CreateAndLoginUser(t, ts, tx, "Tagger", helpers.UniqueEmail("tagger"), "password123")

	body := map[string]interface{}{
		"title":   "Too many tags",
		"content": "x",
		"tags":    []string{"a", "b", "c", "d", "e"},
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/notes", pair.AccessToken, body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "a note can't have more than 4 tags")
}

func TestNotes_CreateRejectsForeignCategory(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, _ := helpers.CreateAndLoginUser(t, ts, tx, "Owner A", helpers.UniqueEmail("owner-a"), "password123")
	_, other := helpers.CreateAndLoginUser(t, ts, tx, "Owner B", helpers.UniqueEmail("owner-b"), "password123")
	foreign := helpers.CreateCategory(t, tx, "theirs", other.ID)

	body := map[string]interface{}{
		"title":      "Sneaky",
		"content":    "filing into someone else's category",
		"categoryId": foreign.ID,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/notes", pair.AccessToken, body)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, fmt.Sprintf("Category with id %s doesn't exist", foreign.ID))
}

func TestNotes_UpdatePatchesFieldsAndReplacesTags(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, _ := helpers.CreateAndLoginUser(t, ts, tx, "Editor", helpers.UniqueEmail("editor"), "password123")

	createBody := map[string]interface{}{
		"title":   "Draft",
		"content": "first version",
		"tags":    []string{"draft", "todo"},
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/notes", pair.AccessToken, createBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var created noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	// Patch the title only; the omitted tag list clears every tag.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/notes/"+created.ID, pair.AccessToken, map[string]interface{}{
		"title": "Final",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "first version", updated.Content)
	assert.Empty(t, updated.Tags)
}

func TestNotes_ShowIncludesOnRequest(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Reader", helpers.UniqueEmail("reader"), "password123")
	category := helpers.CreateCategory(t, tx, "journal", user.ID)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/notes", pair.AccessToken, map[string]interface{}{
		"title":      "Entry",
		"content":    "dear diary",
		"categoryId": category.ID,
		"tags":       []string{"personal"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var created noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	// Without include the relations stay empty.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+created.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var plain noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &plain))
	assert.Nil(t, plain.Category)
	assert.Empty(t, plain.Tags)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+created.ID+"?include=category,tags", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var full noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &full))
	require.NotNil(t, full.Category)
	assert.Equal(t, "journal", full.Category.Name)
	assert.Len(t, full.Tags, 1)
}

func TestNotes_OwnershipIsolation(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pairA, userA := helpers.CreateAndLoginUser(t, ts, tx, "Alice", helpers.UniqueEmail("alice"), "password123")
	pairB, _ := helpers.CreateAndLoginUser(t, ts, tx, "Bob", helpers.UniqueEmail("bob"), "password123")

	note := helpers.CreateNote(t, tx, "Private", "only mine", userA.ID, nil)

	// The owner sees it, the other account gets a 404 on every verb.
	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+note.ID, pairA.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+note.ID, pairB.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/notes/"+note.ID, pairB.AccessToken, map[string]interface{}{"title": "hijack"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/notes/"+note.ID, pairB.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// And Bob's listing never contains Alice's note.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes", pairB.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, note.ID)
}

func TestNotes_SearchMatchesTitleAndContent(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Searcher", helpers.UniqueEmail("searcher"), "password123")

	helpers.CreateNote(t, tx, "groceries list", "milk and eggs", user.ID, nil)
	helpers.CreateNote(t, tx, "weekend plans", "buy groceries on saturday", user.ID, nil)
	helpers.CreateNote(t, tx, "unrelated", "nothing here", user.ID, nil)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes?search=groceries", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var page struct {
		Info struct {
			Total int64 `json:"total"`
		} `json:"info"`
		Data []noteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	assert.Equal(t, int64(2), page.Info.Total)
}

func TestNotes_DestroyLeavesTagsAndCategory(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Remover", helpers.UniqueEmail("remover"), "password123")
	category := helpers.CreateCategory(t, tx, "keep-me", user.ID)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/notes", pair.AccessToken, map[string]interface{}{
		"title":      "Doomed",
		"content":    "soon deleted",
		"categoryId": category.ID,
		"tags":       []string{"survivor"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var created noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/notes/"+created.ID, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+created.ID, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// The category and tag outlive the note.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/categories/"+category.ID, pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/tags", pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "survivor")
}

func TestNotes_CategoryAndTagsSubresources(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Nested", helpers.UniqueEmail("nested"), "password123")
	category := helpers.CreateCategory(t, tx, "projects", user.ID)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/notes", pair.AccessToken, map[string]interface{}{
		"title":      "With relations",
		"content":    "x",
		"categoryId": category.ID,
		"tags":       []string{"one", "two"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	var created noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+created.ID+"/category", pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "projects")

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+created.ID+"/tags", pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "one")
	assert.Contains(t, bodyStr, "two")

	// A note without a category answers null.
	bare := helpers.CreateNote(t, tx, "bare", "no category", user.ID, nil)
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+bare.ID+"/category", pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "null", bodyStr)
}

func TestNotes_UpdateExplicitNullClearsCategory(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	pair, user := helpers.CreateAndLoginUser(t, ts, tx, "Detacher", helpers.UniqueEmail("detach"), "password123")
	category := helpers.CreateCategory(t, tx, "inbox", user.ID)
	note := helpers.CreateNote(t, tx, "Draft", "body", user.ID, &category.ID)

	// Omitting categoryId leaves the category alone.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/notes/"+note.ID, pair.AccessToken, map[string]interface{}{
		"title": "Draft v2",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated noteResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, category.ID, *updated.CategoryID)

	// An explicit null detaches it.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/notes/"+note.ID, pair.AccessToken, map[string]interface{}{
		"categoryId": nil,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
	assert.Nil(t, updated.CategoryID)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notes/"+note.ID+"/category", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "null", bodyStr)
}
