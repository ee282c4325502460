package handlers

import (
	"github.com/docshare/filesystem/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type contentView struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	Path       string             `json:"path"`
	Type       models.ContentType `json:"type"`
	ParentID   *uuid.UUID         `json:"parentID,omitempty"`
	Created    int64              `json:"created"`
	Modified   int64              `json:"modified"`
	RowVersion int64              `json:"rowVersion"`
	Children   []contentView      `json:"children,omitempty"`
	Links      []Link             `json:"links"`
}

// newContentView decorates content with the links a client can follow. The
// root gets no mutation links because it can be neither moved nor deleted.
func newContentView(content *models.Content) contentView {
	view := contentView{
		ID:         content.ID,
		Name:       content.Name,
		Path:       content.Path,
		Type:       content.Type,
		ParentID:   content.ParentID,
		Created:    content.Created,
		Modified:   content.Modified,
		RowVersion: content.RowVersion,
		Links: []Link{
			{Href: contentURL(content.CustomerID, content.Path), Rel: "self", Method: fiber.MethodGet},
		},
	}

	if !content.IsRoot() {
		view.Links = append(view.Links,
			Link{Href: contentIDURL(content.CustomerID, content.ID), Rel: "self", Method: fiber.MethodPatch},
			Link{Href: contentIDURL(content.CustomerID, content.ID), Rel: "self", Method: fiber.MethodDelete},
		)
	}

	for i := range content.Children {
		view.Children = append(view.Children, newContentView(&content.Children[i]))
	}
	return view
}

func newContentViews(contents []models.Content) []contentView {
	views := make([]contentView, 0, len(contents))
	for i := range contents {
		views = append(views, newContentView(&contents[i]))
	}
	return views
}
