package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docshare/filesystem/internal/database"
	"github.com/docshare/filesystem/internal/middleware"
	"github.com/docshare/filesystem/internal/models"
	"github.com/docshare/filesystem/internal/repository"
	"github.com/docshare/filesystem/internal/services"
	"github.com/docshare/filesystem/pkg/logger"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	service *services.ContentService
	logs    *bytes.Buffer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logs := &bytes.Buffer{}
	logger.InitWithWriter(logs)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed migrating contents: %v", err)
	}

	contentService := services.NewContentService(repository.NewContentRepository(db), models.RootName)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	Register(app.Group("/api"), NewContentHandler(contentService), NewFilesHandler(contentService, 2))

	return &testEnv{app: app, db: db, service: contentService, logs: logs}
}

// seedTree creates Home, Home/Documents and Home/Documents/Doc.pdf.
func (e *testEnv) seedTree(t *testing.T, customerID uuid.UUID) (root, documents, doc *models.Content) {
	t.Helper()

	ctx := context.Background()
	root, err := e.service.Save(ctx, services.SaveRequest{CustomerID: customerID, Name: models.RootName})
	if err != nil {
		t.Fatalf("failed creating root: %v", err)
	}
	documents, err = e.service.Save(ctx, services.SaveRequest{CustomerID: customerID, ParentID: &root.ID, Name: "Documents", Type: models.ContentTypeDirectory})
	if err != nil {
		t.Fatalf("failed creating Documents: %v", err)
	}
	doc, err = e.service.Save(ctx, services.SaveRequest{CustomerID: customerID, ParentID: &documents.ID, Name: "Doc.pdf", Type: models.ContentTypeFile})
	if err != nil {
		t.Fatalf("failed creating Doc.pdf: %v", err)
	}
	return root, documents, doc
}

func (e *testEnv) createChild(t *testing.T, parent *models.Content, name string, contentType models.ContentType) *models.Content {
	t.Helper()

	content, err := e.service.Save(context.Background(), services.SaveRequest{
		CustomerID: parent.CustomerID,
		ParentID:   &parent.ID,
		Name:       name,
		Type:       contentType,
	})
	if err != nil {
		t.Fatalf("failed creating %s: %v", name, err)
	}
	return content
}

func customerPath(customerID uuid.UUID, suffix string) string {
	return "/api/" + customerID.String() + suffix
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertEnvelopeCode(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["code"].(string); got != expected {
		t.Fatalf("expected code %q, got %q (%+v)", expected, got, body)
	}
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %+v", body["data"])
	}
	return data
}

func dataList(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected list data, got %+v", body["data"])
	}
	return data
}
