package handlers

import (
	"strings"

	"github.com/docshare/filesystem/internal/middleware"
	"github.com/docshare/filesystem/internal/models"
	"github.com/docshare/filesystem/internal/services"
	"github.com/docshare/filesystem/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ContentHandler struct {
	Content *services.ContentService
}

func NewContentHandler(content *services.ContentService) *ContentHandler {
	return &ContentHandler{Content: content}
}

type createContentRequest struct {
	Name     string              `json:"name"`
	Type     *models.ContentType `json:"type"`
	ParentID *uuid.UUID          `json:"parentID"`
}

type updateContentRequest struct {
	Name       string     `json:"name"`
	ParentID   *uuid.UUID `json:"parentID"`
	RowVersion *int64     `json:"rowVersion"`
}

type lookupRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// GetByPath resolves everything after /content/ as a path. An empty path
// means the customer's root. Direct children are included.
func (h *ContentHandler) GetByPath(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	path, err := normalizeContentPath(c.Params("*"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid path")
	}

	var req services.SearchRequest
	if path == "" {
		req = services.SearchRoot(customerID)
	} else {
		req = services.SearchByPath(customerID, path)
	}
	req.IncludeChildren = true

	content, err := h.Content.GetOne(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, newContentView(content))
}

func (h *ContentHandler) Create(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	var req createContentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	isRoot := req.ParentID == nil && req.Name == h.Content.RootName()
	contentType := models.ContentTypeDirectory
	if req.Type != nil {
		contentType = *req.Type
	} else if !isRoot {
		return utils.Error(c, fiber.StatusBadRequest, "type is required")
	}

	content, err := h.Content.Save(c.UserContext(), services.SaveRequest{
		CustomerID: customerID,
		ParentID:   req.ParentID,
		Name:       req.Name,
		Type:       contentType,
	})
	if err != nil {
		return respondError(c, err)
	}

	return utils.Created(c, contentURL(customerID, content.Path), newContentView(content))
}

// Update renames and/or moves a node. The expected row version comes from the
// body or, failing that, from If-Match.
func (h *ContentHandler) Update(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid content id")
	}

	var req updateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	rowVersion := req.RowVersion
	if rowVersion == nil {
		rowVersion, err = parseIfMatch(c.Get(fiber.HeaderIfMatch))
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid If-Match header")
		}
	}

	if strings.TrimSpace(req.Name) == "" && req.ParentID == nil {
		return utils.Error(c, fiber.StatusBadRequest, "name or parentID is required")
	}

	update := services.UpdateRequest{
		CustomerID: customerID,
		ID:         id,
		Name:       req.Name,
		RowVersion: rowVersion,
	}
	if req.ParentID != nil {
		update.ParentID = *req.ParentID
	}

	content, err := h.Content.Update(c.UserContext(), update)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, newContentView(content))
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid content id")
	}

	if err := h.Content.Delete(c.UserContext(), customerID, id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListChildren pages through the direct children of a node, directories
// first unless a sort query says otherwise. A non-uuid id falls through to
// the path route so that a directory literally named "children" stays
// reachable.
func (h *ContentHandler) ListChildren(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Next()
	}

	parent, err := h.Content.GetOne(c.UserContext(), services.SearchByIDs(customerID, id))
	if err != nil {
		return respondError(c, err)
	}

	sort, err := parseSort(c.Query("sort"), []services.SortDirective{
		{Field: services.SortByType},
		{Field: services.SortByName},
	})
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid sort")
	}

	pagination := utils.ParsePagination(c)

	req := services.SearchAll(customerID)
	req.ParentID = &parent.ID
	req.Sort = sort
	req.Top = pagination.Limit
	req.Offset = pagination.Offset

	total, err := h.Content.Count(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	children, err := h.Content.Get(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Paginated(c, newContentViews(children), pagination.Page, pagination.Limit, total)
}

func (h *ContentHandler) Lookup(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	var req lookupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.IDs) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "ids are required")
	}

	search := services.SearchByIDs(customerID, req.IDs...)
	search.Sort = []services.SortDirective{{Field: services.SortByPath}}

	contents, err := h.Content.Get(c.UserContext(), search)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, newContentViews(contents))
}
