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

// FilesHandler serves name lookups restricted to files.
type FilesHandler struct {
	Content        *services.ContentService
	DefaultMaxRows int
}

func NewFilesHandler(content *services.ContentService, defaultMaxRows int) *FilesHandler {
	if defaultMaxRows <= 0 {
		defaultMaxRows = models.DefaultMaxRows
	}
	return &FilesHandler{Content: content, DefaultMaxRows: defaultMaxRows}
}

// GetByName returns the file with exactly this name. When several
// directories hold one, the shallowest path wins.
func (h *FilesHandler) GetByName(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	return h.getOne(c, services.SearchByName(customerID, name, services.MatchExact), nil)
}

func (h *FilesHandler) GetByDirectory(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	directoryID, err := parseUUID(c.Params("directoryId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid directory id")
	}

	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}

	return h.getOne(c, services.SearchByName(customerID, name, services.MatchExact), &directoryID)
}

func (h *FilesHandler) getOne(c *fiber.Ctx, req services.SearchRequest, directoryID *uuid.UUID) error {
	fileType := models.ContentTypeFile
	req.Type = &fileType
	req.ParentID = directoryID
	req.Sort = []services.SortDirective{{Field: services.SortByPath}}

	file, err := h.Content.GetOne(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, newContentView(file))
}

// Search is an autocomplete over file names. It matches by prefix unless
// another match mode is given, orders by name descending unless sort is set,
// and caps the result at top rows.
func (h *FilesHandler) Search(c *fiber.Ctx) error {
	customerID := middleware.GetCurrentCustomer(c)

	match := services.MatchStartsWith
	if raw := c.Query("match"); raw != "" {
		parsed, err := services.ParseMatchMode(raw)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid match mode")
		}
		match = parsed
	}

	top := utils.ParseIntDefault(c.Query("top"), h.DefaultMaxRows)
	if top <= 0 {
		return utils.Error(c, fiber.StatusBadRequest, "top must be positive")
	}

	sort, err := parseSort(c.Query("sort"), []services.SortDirective{{Field: services.SortByName, Descending: true}})
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid sort")
	}

	name := c.Query("name")
	fileType := models.ContentTypeFile

	req := services.SearchByName(customerID, name, match)
	req.Type = &fileType
	req.Top = top
	req.Sort = sort

	if raw := strings.TrimSpace(c.Query("directoryID")); raw != "" {
		directoryID, err := parseUUID(raw)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid directoryID")
		}
		req.ParentID = &directoryID
	}

	files, err := h.Content.Get(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	if len(files) == 0 {
		return utils.ErrorWithCode(c, fiber.StatusNotFound, services.KindNotFound.String(), "no files match "+name)
	}

	return utils.Success(c, fiber.StatusOK, newContentViews(files))
}
