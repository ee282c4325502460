package services

import (
	"context"

	"github.com/docshare/filesystem/internal/models"
	"github.com/docshare/filesystem/internal/repository"
	"github.com/docshare/filesystem/pkg/logger"
	"github.com/google/uuid"
)

// ContentService is the entry point used by the HTTP layer. It delegates to
// the search and hierarchy services and logs committed mutations.
type ContentService struct {
	Search    *SearchService
	Hierarchy *HierarchyService
}

func NewContentService(repo *repository.ContentRepository, rootName string) *ContentService {
	search := NewSearchService(repo)
	hierarchy := NewHierarchyService(repo, search, rootName)
	return &ContentService{Search: search, Hierarchy: hierarchy}
}

func (s *ContentService) RootName() string {
	return s.Hierarchy.RootName()
}

func (s *ContentService) Get(ctx context.Context, req SearchRequest) ([]models.Content, error) {
	return s.Search.Find(ctx, req)
}

// GetOne returns the first match of req or a NotFound error naming what was
// searched for.
func (s *ContentService) GetOne(ctx context.Context, req SearchRequest) (*models.Content, error) {
	if req.Top == 0 {
		req.Top = 1
	}
	contents, err := s.Search.Find(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, req.notFound()
	}
	return &contents[0], nil
}

func (s *ContentService) Count(ctx context.Context, req SearchRequest) (int64, error) {
	return s.Search.Count(ctx, req)
}

func (s *ContentService) Save(ctx context.Context, req SaveRequest) (*models.Content, error) {
	content, err := s.Hierarchy.Save(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.InfoWithCustomer(req.CustomerID.String(), "content_saved", map[string]interface{}{
		"content_id": content.ID.String(),
		"path":       content.Path,
		"type":       content.Type.String(),
	})
	return content, nil
}

func (s *ContentService) Update(ctx context.Context, req UpdateRequest) (*models.Content, error) {
	content, err := s.Hierarchy.Update(ctx, req)
	if err != nil {
		if KindOf(err) == KindConflict {
			logger.WarnWithCustomer(req.CustomerID.String(), "content_update_conflict", map[string]interface{}{
				"content_id": req.ID.String(),
			})
		}
		return nil, err
	}

	logger.InfoWithCustomer(req.CustomerID.String(), "content_updated", map[string]interface{}{
		"content_id":  content.ID.String(),
		"path":        content.Path,
		"row_version": content.RowVersion,
	})
	return content, nil
}

func (s *ContentService) Delete(ctx context.Context, customerID, id uuid.UUID) error {
	removed, err := s.Hierarchy.Delete(ctx, customerID, id)
	if err != nil {
		return err
	}

	logger.InfoWithCustomer(customerID.String(), "content_deleted", map[string]interface{}{
		"content_id": id.String(),
		"removed":    removed,
	})
	return nil
}
