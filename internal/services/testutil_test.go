package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/docshare/filesystem/internal/database"
	"github.com/docshare/filesystem/internal/models"
	"github.com/docshare/filesystem/internal/repository"
	"github.com/docshare/filesystem/pkg/logger"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	repo    *repository.ContentRepository
	service *ContentService
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

	repo := repository.NewContentRepository(db)
	return &testEnv{
		db:      db,
		repo:    repo,
		service: NewContentService(repo, ""),
		logs:    logs,
	}
}

func (e *testEnv) createRoot(t *testing.T, customerID uuid.UUID) *models.Content {
	t.Helper()

	root, err := e.service.Save(context.Background(), SaveRequest{CustomerID: customerID, Name: models.RootName})
	if err != nil {
		t.Fatalf("failed creating root: %v", err)
	}
	return root
}

func (e *testEnv) createChild(t *testing.T, parent *models.Content, name string, contentType models.ContentType) *models.Content {
	t.Helper()

	parentID := parent.ID
	content, err := e.service.Save(context.Background(), SaveRequest{
		CustomerID: parent.CustomerID,
		ParentID:   &parentID,
		Name:       name,
		Type:       contentType,
	})
	if err != nil {
		t.Fatalf("failed creating %s under %s: %v", name, parent.Path, err)
	}
	return content
}

func (e *testEnv) mustLoad(t *testing.T, customerID, id uuid.UUID) models.Content {
	t.Helper()

	var content models.Content
	if err := e.repo.Query(context.Background(), customerID).Where("contents.id = ?", id).First(&content).Error; err != nil {
		t.Fatalf("failed loading %s: %v", id, err)
	}
	return content
}

func (e *testEnv) pathsOf(t *testing.T, customerID uuid.UUID) map[uuid.UUID]string {
	t.Helper()

	var contents []models.Content
	if err := e.repo.Query(context.Background(), customerID).Find(&contents).Error; err != nil {
		t.Fatalf("failed listing contents: %v", err)
	}
	paths := make(map[uuid.UUID]string, len(contents))
	for _, content := range contents {
		paths[content.ID] = content.Path
	}
	return paths
}

func assertKind(t *testing.T, err error, expected ErrorKind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", expected)
	}
	if kind := KindOf(err); kind != expected {
		t.Fatalf("expected %s error, got %s (%v)", expected, kind, err)
	}
}

func namesOf(contents []models.Content) []string {
	names := make([]string, 0, len(contents))
	for _, content := range contents {
		names = append(names, content.Name)
	}
	return names
}

// afterQuery runs fn once, right after the first query whose SQL contains
// fragment. It lets a test interleave a second request between the reads and
// the commit of the one under test.
func (e *testEnv) afterQuery(t *testing.T, fragment string, fn func()) {
	t.Helper()

	fired := false
	name := "test:after_" + strings.ReplaceAll(fragment, " ", "_")
	err := e.db.Callback().Query().After("gorm:query").Register(name, func(tx *gorm.DB) {
		if fired || !strings.Contains(tx.Statement.SQL.String(), fragment) {
			return
		}
		fired = true
		fn()
	})
	if err != nil {
		t.Fatalf("failed registering query callback: %v", err)
	}
	t.Cleanup(func() {
		_ = e.db.Callback().Query().Remove(name)
		if !fired {
			t.Errorf("expected a query containing %q", fragment)
		}
	})
}
