package handlers

import (
	"net/http"
	"testing"

	"github.com/docshare/filesystem/internal/models"
	"github.com/google/uuid"
)

func TestFilesGetByName(t *testing.T) {
	env := setupTestEnv(t)
	customerID := uuid.New()
	root, documents, doc := env.seedTree(t, customerID)
	env.createChild(t, root, "Doc.pdf", models.ContentTypeFile)

	t.Run("shallowest match wins", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files?name=Doc.pdf"), nil, nil)
		assertStatus(t, resp, http.StatusOK)
		if data := dataMap(t, decodeJSONMap(t, resp)); data["path"] != "Home/Doc.pdf" {
			t.Fatalf("expected Home/Doc.pdf, got %v", data["path"])
		}
	})

	t.Run("directories are not files", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files?name=Documents"), nil, nil)
		assertStatus(t, resp, http.StatusNotFound)
	})

	t.Run("within a directory", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/"+documents.ID.String()+"/files?name=Doc.pdf"), nil, nil)
		assertStatus(t, resp, http.StatusOK)
		if data := dataMap(t, decodeJSONMap(t, resp)); data["id"] != doc.ID.String() {
			t.Fatalf("expected the file under Documents, got %v", data["path"])
		}
	})

	t.Run("name is required", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files"), nil, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("invalid directory id is 400", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/nope/files?name=Doc.pdf"), nil, nil)
		assertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestFilesSearch(t *testing.T) {
	env := setupTestEnv(t)
	customerID := uuid.New()
	root, documents, _ := env.seedTree(t, customerID)
	env.createChild(t, root, "Doc-a.txt", models.ContentTypeFile)
	env.createChild(t, root, "Doc-b.txt", models.ContentTypeFile)
	env.createChild(t, root, "Notes.txt", models.ContentTypeFile)

	t.Run("prefix match ordered by name descending and capped by default", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files/search?name=Doc"), nil, nil)
		assertStatus(t, resp, http.StatusOK)

		items := dataList(t, decodeJSONMap(t, resp))
		if len(items) != 2 {
			t.Fatalf("expected default cap of 2, got %d", len(items))
		}
		if first := items[0].(map[string]any); first["name"] != "Doc.pdf" {
			t.Fatalf("expected Doc.pdf first, got %v", first["name"])
		}
		if second := items[1].(map[string]any); second["name"] != "Doc-b.txt" {
			t.Fatalf("expected Doc-b.txt second, got %v", second["name"])
		}
	})

	t.Run("top and directory filter", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files/search?name=Doc&top=10&directoryID="+documents.ID.String()), nil, nil)
		assertStatus(t, resp, http.StatusOK)

		items := dataList(t, decodeJSONMap(t, resp))
		if len(items) != 1 {
			t.Fatalf("expected 1 file under Documents, got %d", len(items))
		}
	})

	t.Run("contains match", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files/search?name=otes&match=contains"), nil, nil)
		assertStatus(t, resp, http.StatusOK)
		if items := dataList(t, decodeJSONMap(t, resp)); len(items) != 1 {
			t.Fatalf("expected Notes.txt, got %d items", len(items))
		}
	})

	t.Run("sort query orders ascending", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files/search?name=Doc&sort=name"), nil, nil)
		assertStatus(t, resp, http.StatusOK)

		items := dataList(t, decodeJSONMap(t, resp))
		if first := items[0].(map[string]any); first["name"] != "Doc-a.txt" {
			t.Fatalf("expected Doc-a.txt first, got %v", first["name"])
		}
	})

	t.Run("no match is 404", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files/search?name=Zzz"), nil, nil)
		assertStatus(t, resp, http.StatusNotFound)
	})

	t.Run("bad parameters are 400", func(t *testing.T) {
		for _, query := range []string{"?name=Doc&match=fuzzy", "?name=Doc&top=0", "?name=Doc&directoryID=x", "?name=Doc&sort=size"} {
			resp := performRequest(t, env.app, http.MethodGet, customerPath(customerID, "/files/search"+query), nil, nil)
			assertStatus(t, resp, http.StatusBadRequest)
		}
	})
}
