package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/docshare/filesystem/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicatePath is returned by SaveChanges when the (path, customer_id)
// unique index rejects a write.
var ErrDuplicatePath = errors.New("content path already exists")

// ConflictError reports a row whose row_version no longer matches the value
// the caller read.
type ConflictError struct {
	CustomerID uuid.UUID
	ContentID  uuid.UUID
	Name       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("content %s (%s) of customer %s was changed since it was read", e.ContentID, e.Name, e.CustomerID)
}

type ContentRepository struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db, now: time.Now}
}

// Query starts a read over one customer's contents. The customer predicate is
// always the first condition of the statement.
func (r *ContentRepository) Query(ctx context.Context, customerID uuid.UUID) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&models.Content{}).
		Where("contents.customer_id = ?", customerID)
}

// Descendants returns every node below path, the node at path excluded.
func (r *ContentRepository) Descendants(ctx context.Context, customerID uuid.UUID, path string) ([]models.Content, error) {
	prefix := path + models.PathSeparator

	var candidates []models.Content
	err := r.Query(ctx, customerID).
		Where("contents.path LIKE ? ESCAPE '\\'", EscapeLike(prefix)+"%").
		Order("contents.path ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	// LIKE is case-insensitive on some backends; keep exact prefix matches only.
	descendants := candidates[:0]
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate.Path, prefix) {
			descendants = append(descendants, candidate)
		}
	}
	return descendants, nil
}

// PathExists reports whether a node other than exceptID already owns path.
func (r *ContentRepository) PathExists(ctx context.Context, customerID uuid.UUID, path string, exceptID uuid.UUID) (bool, error) {
	var count int64
	query := r.Query(ctx, customerID).Where("contents.path = ?", path)
	if exceptID != uuid.Nil {
		query = query.Where("contents.id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ContentRepository) Begin() *UnitOfWork {
	return &UnitOfWork{repo: r}
}

// UnitOfWork collects staged inserts, updates and removals and writes them in
// a single transaction.
type UnitOfWork struct {
	repo    *ContentRepository
	added   []*models.Content
	updated []*models.Content
	removed []*models.Content
}

func (u *UnitOfWork) Add(content *models.Content) {
	u.added = append(u.added, content)
}

func (u *UnitOfWork) Update(contents ...*models.Content) {
	u.updated = append(u.updated, contents...)
}

func (u *UnitOfWork) Remove(contents ...*models.Content) {
	u.removed = append(u.removed, contents...)
}

// Pending returns the number of staged mutations.
func (u *UnitOfWork) Pending() int {
	return len(u.added) + len(u.updated) + len(u.removed)
}

// SaveChanges commits every staged mutation or none of them. Updates and
// removals compare-and-swap on row_version; a stale row aborts the whole
// transaction with a *ConflictError. It returns the number of rows written.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	if u.Pending() == 0 {
		return 0, nil
	}

	now := u.repo.now().UTC().Unix()
	written := 0

	err := u.repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, content := range u.added {
			content.Created = now
			content.Modified = now
			content.RowVersion = 1
			if err := tx.Create(content).Error; err != nil {
				return translateWriteError(err)
			}
			written++
		}

		for _, content := range u.updated {
			result := tx.Model(&models.Content{}).
				Where("id = ? AND customer_id = ? AND row_version = ?", content.ID, content.CustomerID, content.RowVersion).
				Updates(map[string]interface{}{
					"name":        content.Name,
					"path":        content.Path,
					"parent_id":   content.ParentID,
					"modified":    now,
					"row_version": gorm.Expr("row_version + 1"),
				})
			if result.Error != nil {
				return translateWriteError(result.Error)
			}
			if result.RowsAffected == 0 {
				return conflictFor(content)
			}
			written++
		}

		// Children go before their parents so the parent_id foreign key
		// never points at a deleted row.
		removed := make([]*models.Content, len(u.removed))
		copy(removed, u.removed)
		sort.SliceStable(removed, func(i, j int) bool {
			return strings.Count(removed[i].Path, models.PathSeparator) > strings.Count(removed[j].Path, models.PathSeparator)
		})
		for _, content := range removed {
			result := tx.Where("id = ? AND customer_id = ? AND row_version = ?", content.ID, content.CustomerID, content.RowVersion).
				Delete(&models.Content{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return conflictFor(content)
			}
			written++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, content := range u.updated {
		content.Modified = now
		content.RowVersion++
	}

	u.added, u.updated, u.removed = nil, nil, nil
	return written, nil
}

func conflictFor(content *models.Content) error {
	return &ConflictError{
		CustomerID: content.CustomerID,
		ContentID:  content.ID,
		Name:       content.Name,
	}
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicatePath, err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes value safe to embed in a LIKE pattern that declares
// ESCAPE '\'.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}
