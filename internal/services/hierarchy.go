package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/docshare/filesystem/internal/models"
	"github.com/docshare/filesystem/internal/repository"
	"github.com/google/uuid"
)

type SaveRequest struct {
	CustomerID uuid.UUID
	ParentID   *uuid.UUID
	Name       string
	Type       models.ContentType
}

// UpdateRequest renames and/or moves a node. A zero ParentID or an empty Name
// leaves that part unchanged. RowVersion, when set, must match the stored
// value.
type UpdateRequest struct {
	CustomerID uuid.UUID
	ID         uuid.UUID
	ParentID   uuid.UUID
	Name       string
	RowVersion *int64
}

// HierarchyService creates, moves, renames and deletes nodes while keeping
// every stored path equal to its parent's path plus its own name.
type HierarchyService struct {
	repo     *repository.ContentRepository
	search   *SearchService
	rootName string
}

// NewHierarchyService builds the engine. An empty rootName selects
// models.RootName.
func NewHierarchyService(repo *repository.ContentRepository, search *SearchService, rootName string) *HierarchyService {
	if rootName == "" {
		rootName = models.RootName
	}
	return &HierarchyService{repo: repo, search: search, rootName: rootName}
}

func (h *HierarchyService) RootName() string {
	return h.rootName
}

func (h *HierarchyService) Save(ctx context.Context, req SaveRequest) (*models.Content, error) {
	if req.CustomerID == uuid.Nil {
		return nil, invalid(req.CustomerID, req.Name, "customer id is required")
	}

	if req.ParentID == nil && req.Name == h.rootName {
		return h.createRoot(ctx, req.CustomerID)
	}

	name := strings.TrimSpace(req.Name)
	if err := validateName(req.CustomerID, name); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, invalid(req.CustomerID, name, "unknown content type %d", uint8(req.Type))
	}
	if req.ParentID == nil {
		return nil, invalid(req.CustomerID, name, "parent id is required")
	}

	parent, err := h.findByID(ctx, req.CustomerID, *req.ParentID)
	if err != nil {
		return nil, err
	}
	if !parent.IsDirectory() {
		return nil, invalid(req.CustomerID, name, "parent %s is not a directory", parent.Path)
	}

	path := parent.ChildPath(name)
	if err := h.ensurePathFree(ctx, req.CustomerID, path, uuid.Nil); err != nil {
		return nil, err
	}

	content := &models.Content{
		CustomerID: req.CustomerID,
		Name:       name,
		Path:       path,
		Type:       req.Type,
		ParentID:   &parent.ID,
	}

	// The parent is written back unchanged so its row_version guards the
	// child's path against a concurrent rename, move or delete of the parent.
	uow := h.repo.Begin()
	uow.Add(content)
	uow.Update(parent)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, translateCommitError(req.CustomerID, path, err)
	}
	return content, nil
}

func (h *HierarchyService) createRoot(ctx context.Context, customerID uuid.UUID) (*models.Content, error) {
	existing, err := h.search.Count(ctx, SearchRoot(customerID))
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, &ContentError{Kind: KindRootExists, CustomerID: customerID}
	}

	root := &models.Content{
		CustomerID: customerID,
		Name:       h.rootName,
		Path:       h.rootName,
		Type:       models.ContentTypeDirectory,
	}

	uow := h.repo.Begin()
	uow.Add(root)
	if _, err := uow.SaveChanges(ctx); err != nil {
		// A concurrent request won the single-root index.
		if errors.Is(err, repository.ErrDuplicatePath) {
			return nil, &ContentError{Kind: KindRootExists, CustomerID: customerID, Err: err}
		}
		return nil, translateCommitError(customerID, root.Path, err)
	}
	return root, nil
}

func (h *HierarchyService) Update(ctx context.Context, req UpdateRequest) (*models.Content, error) {
	if req.CustomerID == uuid.Nil || req.ID == uuid.Nil {
		return nil, invalid(req.CustomerID, req.Name, "customer id and content id are required")
	}

	node, err := h.findByID(ctx, req.CustomerID, req.ID)
	if err != nil {
		return nil, err
	}
	if req.RowVersion != nil && *req.RowVersion != node.RowVersion {
		id := node.ID
		return nil, &ContentError{Kind: KindConflict, CustomerID: req.CustomerID, ContentID: &id, Name: node.Name}
	}

	oldPath := node.Path
	descendants, err := h.repo.Descendants(ctx, req.CustomerID, oldPath)
	if err != nil {
		return nil, unexpected(req.CustomerID, err)
	}
	snapshot := make([]string, len(descendants))
	for i := range descendants {
		snapshot[i] = descendants[i].Path
	}

	changed := false

	var newParent *models.Content
	if req.ParentID != uuid.Nil && (node.ParentID == nil || *node.ParentID != req.ParentID) {
		newParent, err = h.reparent(ctx, node, req.ParentID)
		if err != nil {
			return nil, err
		}
		rebase(descendants, snapshot, oldPath, node.Path)
		changed = true
	}

	name := strings.TrimSpace(req.Name)
	if name != "" && name != node.Name {
		if node.IsRoot() {
			return nil, invalid(req.CustomerID, name, "the root directory cannot be renamed")
		}
		if err := validateName(req.CustomerID, name); err != nil {
			return nil, err
		}
		node.Path = strings.TrimSuffix(node.Path, node.Name) + name
		node.Name = name
		rebase(descendants, snapshot, oldPath, node.Path)
		changed = true
	}

	if !changed {
		return node, nil
	}

	if err := h.ensurePathFree(ctx, req.CustomerID, node.Path, node.ID); err != nil {
		return nil, err
	}

	uow := h.repo.Begin()
	uow.Update(node)
	if newParent != nil {
		uow.Update(newParent)
	}
	for i := range descendants {
		uow.Update(&descendants[i])
	}
	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, translateCommitError(req.CustomerID, node.Path, err)
	}
	return node, nil
}

// reparent moves node under newParentID. The old and new parents are read
// in one lookup; the old parent's path prefix is swapped for the new one.
// The new parent is returned so the caller can guard it with its row_version.
func (h *HierarchyService) reparent(ctx context.Context, node *models.Content, newParentID uuid.UUID) (*models.Content, error) {
	if node.IsRoot() {
		return nil, invalid(node.CustomerID, node.Name, "the root directory cannot be moved")
	}
	if newParentID == node.ID {
		return nil, invalid(node.CustomerID, node.Name, "a node cannot be its own parent")
	}

	oldParentID := *node.ParentID
	parents, err := h.search.Find(ctx, SearchByIDs(node.CustomerID, oldParentID, newParentID))
	if err != nil {
		return nil, err
	}

	var oldParent, newParent *models.Content
	for i := range parents {
		switch parents[i].ID {
		case oldParentID:
			oldParent = &parents[i]
		case newParentID:
			newParent = &parents[i]
		}
	}
	if oldParent == nil {
		return nil, notFoundByID(node.CustomerID, oldParentID)
	}
	if newParent == nil {
		return nil, notFoundByID(node.CustomerID, newParentID)
	}

	if !newParent.IsDirectory() {
		return nil, invalid(node.CustomerID, node.Name, "parent %s is not a directory", newParent.Path)
	}
	if node.IsAncestorOf(newParent) {
		return nil, invalid(node.CustomerID, node.Name, "cannot move %s below its own descendant %s", node.Path, newParent.Path)
	}

	node.Path = replacePrefix(node.Path, oldParent.Path, newParent.Path)
	node.ParentID = &newParent.ID
	return newParent, nil
}

// Delete removes the node and every node below it in one transaction. It
// returns the number of removed rows.
func (h *HierarchyService) Delete(ctx context.Context, customerID, id uuid.UUID) (int, error) {
	if customerID == uuid.Nil || id == uuid.Nil {
		return 0, invalid(customerID, "", "customer id and content id are required")
	}

	node, err := h.findByID(ctx, customerID, id)
	if err != nil {
		return 0, err
	}

	descendants, err := h.repo.Descendants(ctx, customerID, node.Path)
	if err != nil {
		return 0, unexpected(customerID, err)
	}

	uow := h.repo.Begin()
	uow.Remove(node)
	for i := range descendants {
		uow.Remove(&descendants[i])
	}
	removed, err := uow.SaveChanges(ctx)
	if err != nil {
		return 0, translateCommitError(customerID, node.Path, err)
	}
	return removed, nil
}

func (h *HierarchyService) findByID(ctx context.Context, customerID, id uuid.UUID) (*models.Content, error) {
	contents, err := h.search.Find(ctx, SearchByIDs(customerID, id))
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, notFoundByID(customerID, id)
	}
	return &contents[0], nil
}

func (h *HierarchyService) ensurePathFree(ctx context.Context, customerID uuid.UUID, path string, exceptID uuid.UUID) error {
	exists, err := h.repo.PathExists(ctx, customerID, path, exceptID)
	if err != nil {
		return unexpected(customerID, err)
	}
	if exists {
		return &ContentError{Kind: KindPathExists, CustomerID: customerID, Path: path}
	}
	return nil
}

// rebase rewrites each descendant path from its snapshot, swapping the leading
// oldPath for newPath.
func rebase(descendants []models.Content, snapshot []string, oldPath, newPath string) {
	for i := range descendants {
		descendants[i].Path = replacePrefix(snapshot[i], oldPath, newPath)
	}
}

// replacePrefix swaps only the leading prefix of path. Occurrences of prefix
// further inside path are left alone.
func replacePrefix(path, prefix, replacement string) string {
	if !strings.HasPrefix(path, prefix) {
		return path
	}
	return replacement + path[len(prefix):]
}

func validateName(customerID uuid.UUID, name string) error {
	if name == "" {
		return invalid(customerID, name, "name is required")
	}
	if utf8.RuneCountInString(name) > models.MaxNameLength {
		return invalid(customerID, name, "name exceeds %d characters", models.MaxNameLength)
	}
	if strings.Contains(name, models.PathSeparator) {
		return invalid(customerID, name, "name must not contain %q", models.PathSeparator)
	}
	return nil
}
