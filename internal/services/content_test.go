package services

import (
	"context"
	"strings"
	"testing"

	"github.com/docshare/filesystem/internal/models"
	"github.com/google/uuid"
)

func TestContentServiceGetOne(t *testing.T) {
	env := setupTestEnv(t)
	customerID := uuid.New()
	env.createRoot(t, customerID)

	_, err := env.service.GetOne(context.Background(), SearchByPath(customerID, "Home/Missing"))
	assertKind(t, err, KindNotFound)

	contentErr := err.(*ContentError)
	if contentErr.Path != "Home/Missing" || contentErr.CustomerID != customerID {
		t.Fatalf("expected not found to carry path and customer, got %+v", contentErr)
	}

	missingID := uuid.New()
	_, err = env.service.GetOne(context.Background(), SearchByIDs(customerID, missingID))
	assertKind(t, err, KindNotFound)
	contentErr = err.(*ContentError)
	if contentErr.ContentID == nil || *contentErr.ContentID != missingID || contentErr.Path != "" {
		t.Fatalf("expected not found to carry the id only, got %+v", contentErr)
	}

	_, err = env.service.GetOne(context.Background(), SearchByName(customerID, "ghost.txt", MatchExact))
	assertKind(t, err, KindNotFound)
	contentErr = err.(*ContentError)
	if contentErr.Name != "ghost.txt" || contentErr.ContentID != nil {
		t.Fatalf("expected not found to carry the name, got %+v", contentErr)
	}
}

func TestContentServiceLogsMutations(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	customerID := uuid.New()

	root := env.createRoot(t, customerID)
	docs := env.createChild(t, root, "Docs", models.ContentTypeDirectory)
	if _, err := env.service.Update(ctx, UpdateRequest{CustomerID: customerID, ID: docs.ID, Name: "Papers"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stale := int64(1)
	if _, err := env.service.Update(ctx, UpdateRequest{CustomerID: customerID, ID: docs.ID, Name: "Again", RowVersion: &stale}); err == nil {
		t.Fatal("expected conflict")
	}
	if err := env.service.Delete(ctx, customerID, docs.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	output := env.logs.String()
	for _, action := range []string{"content_saved", "content_updated", "content_update_conflict", "content_deleted"} {
		if !strings.Contains(output, `"action":"`+action+`"`) {
			t.Errorf("expected %s log line, got %s", action, output)
		}
	}
	if !strings.Contains(output, customerID.String()) {
		t.Error("expected log lines to carry the customer id")
	}
}

func TestNewContentServiceRootName(t *testing.T) {
	env := setupTestEnv(t)

	if env.service.RootName() != models.RootName {
		t.Fatalf("expected default root name, got %s", env.service.RootName())
	}
	if got := NewContentService(env.repo, "Root").RootName(); got != "Root" {
		t.Fatalf("expected Root, got %s", got)
	}
}
