package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docshare/filesystem/internal/models"
	"github.com/docshare/filesystem/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchContains
	MatchStartsWith
	MatchEndsWith
)

func (m MatchMode) String() string {
	switch m {
	case MatchContains:
		return "contains"
	case MatchStartsWith:
		return "startswith"
	case MatchEndsWith:
		return "endswith"
	default:
		return "exact"
	}
}

func ParseMatchMode(value string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "exact", "equals":
		return MatchExact, nil
	case "contains":
		return MatchContains, nil
	case "startswith", "starts_with", "prefix":
		return MatchStartsWith, nil
	case "endswith", "ends_with", "suffix":
		return MatchEndsWith, nil
	default:
		return MatchExact, fmt.Errorf("unknown match mode %q", value)
	}
}

type SortField string

const (
	SortByName     SortField = "name"
	SortByPath     SortField = "path"
	SortByType     SortField = "type"
	SortByCreated  SortField = "created"
	SortByModified SortField = "modified"
)

type SortDirective struct {
	Field      SortField
	Descending bool
}

// SearchRequest describes a read over one customer's contents. The customer
// id can only be set through the constructors, so no request exists without
// one.
type SearchRequest struct {
	customerID uuid.UUID

	byIDs bool
	ids   []uuid.UUID

	byName bool
	name   string
	match  MatchMode

	byPath bool
	path   string

	root bool

	ParentID        *uuid.UUID
	Type            *models.ContentType
	Sort            []SortDirective
	Top             int
	Offset          int
	IncludeChildren bool
}

func SearchByIDs(customerID uuid.UUID, ids ...uuid.UUID) SearchRequest {
	return SearchRequest{customerID: customerID, byIDs: true, ids: ids}
}

func SearchByName(customerID uuid.UUID, name string, match MatchMode) SearchRequest {
	return SearchRequest{customerID: customerID, byName: true, name: name, match: match}
}

func SearchByPath(customerID uuid.UUID, path string) SearchRequest {
	return SearchRequest{customerID: customerID, byPath: true, path: path}
}

func SearchRoot(customerID uuid.UUID) SearchRequest {
	return SearchRequest{customerID: customerID, root: true}
}

func SearchAll(customerID uuid.UUID) SearchRequest {
	return SearchRequest{customerID: customerID}
}

func (s SearchRequest) CustomerID() uuid.UUID {
	return s.customerID
}

// Build composes the query without running it. The customer predicate comes
// first; every other filter is ANDed after it.
func (s SearchRequest) Build(ctx context.Context, repo *repository.ContentRepository) (*gorm.DB, error) {
	query, err := s.filtered(ctx, repo)
	if err != nil {
		return nil, err
	}

	for _, directive := range s.Sort {
		column, ok := sortColumns[directive.Field]
		if !ok {
			return nil, invalid(s.customerID, "", "unknown sort field %q", directive.Field)
		}
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Table: "contents", Name: column},
			Desc:   directive.Descending,
		})
	}

	if s.Top < 0 || s.Offset < 0 {
		return nil, invalid(s.customerID, "", "top and offset must not be negative")
	}
	if s.Top > 0 {
		query = query.Limit(s.Top)
	}
	if s.Offset > 0 {
		query = query.Offset(s.Offset)
	}

	if s.IncludeChildren {
		customerID := s.customerID
		query = query.Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("customer_id = ?", customerID).Order("path ASC")
		})
	}

	return query, nil
}

// filtered applies the predicates only, leaving out ordering, paging and
// preloads so the result can also be counted.
func (s SearchRequest) filtered(ctx context.Context, repo *repository.ContentRepository) (*gorm.DB, error) {
	if s.customerID == uuid.Nil {
		return nil, invalid(s.customerID, "", "customer id is required")
	}

	query := repo.Query(ctx, s.customerID)

	if s.byIDs {
		switch len(s.ids) {
		case 0:
			query = query.Where("1 = 0")
		case 1:
			query = query.Where("contents.id = ?", s.ids[0])
		default:
			query = query.Where("contents.id IN ?", s.ids)
		}
	}

	if s.byName {
		escaped := repository.EscapeLike(s.name)
		switch s.match {
		case MatchExact:
			query = query.Where("contents.name = ?", s.name)
		case MatchContains:
			query = query.Where("contents.name LIKE ? ESCAPE '\\'", "%"+escaped+"%")
		case MatchStartsWith:
			query = query.Where("contents.name LIKE ? ESCAPE '\\'", escaped+"%")
		case MatchEndsWith:
			query = query.Where("contents.name LIKE ? ESCAPE '\\'", "%"+escaped)
		default:
			return nil, invalid(s.customerID, s.name, "unknown match mode %d", s.match)
		}
	}

	if s.byPath {
		query = query.Where("contents.path = ?", s.path)
	}
	if s.root {
		query = query.Where("contents.parent_id IS NULL")
	}
	if s.ParentID != nil {
		query = query.Where("contents.parent_id = ?", *s.ParentID)
	}
	if s.Type != nil {
		if !s.Type.Valid() {
			return nil, invalid(s.customerID, "", "unknown content type %d", uint8(*s.Type))
		}
		query = query.Where("contents.type = ?", *s.Type)
	}

	return query, nil
}

// notFound describes the request in a NotFound error.
func (s SearchRequest) notFound() error {
	switch {
	case s.byPath:
		return notFoundByPath(s.customerID, s.path)
	case s.byIDs && len(s.ids) == 1:
		return notFoundByID(s.customerID, s.ids[0])
	case s.byName:
		return &ContentError{Kind: KindNotFound, CustomerID: s.customerID, Name: s.name}
	}
	return &ContentError{Kind: KindNotFound, CustomerID: s.customerID}
}

var sortColumns = map[SortField]string{
	SortByName:     "name",
	SortByPath:     "path",
	SortByType:     "type",
	SortByCreated:  "created",
	SortByModified: "modified",
}

func ParseSortField(value string) (SortField, error) {
	field := SortField(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := sortColumns[field]; !ok {
		return "", fmt.Errorf("unknown sort field %q", value)
	}
	return field, nil
}

type SearchService struct {
	repo *repository.ContentRepository
}

func NewSearchService(repo *repository.ContentRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Find runs req. No match is an empty slice, not an error.
func (s *SearchService) Find(ctx context.Context, req SearchRequest) ([]models.Content, error) {
	query, err := req.Build(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	contents := []models.Content{}
	if err := query.Find(&contents).Error; err != nil {
		return nil, unexpected(req.customerID, err)
	}
	return contents, nil
}

// Count returns how many rows match req, ignoring Top and Offset.
func (s *SearchService) Count(ctx context.Context, req SearchRequest) (int64, error) {
	query, err := req.filtered(ctx, s.repo)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, unexpected(req.customerID, err)
	}
	return count, nil
}
