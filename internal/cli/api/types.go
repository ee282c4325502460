package api

import "time"

// Content mirrors the server's content view.
type Content struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Type       string    `json:"type"`
	ParentID   *string   `json:"parentID,omitempty"`
	Created    int64     `json:"created"`
	Modified   int64     `json:"modified"`
	RowVersion int64     `json:"rowVersion"`
	Children   []Content `json:"children,omitempty"`
	Links      []Link    `json:"links,omitempty"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

func (c Content) IsDirectory() bool {
	return c.Type == "Directory"
}

func (c Content) IsRoot() bool {
	return c.ParentID == nil
}

func (c Content) CreatedAt() time.Time {
	return time.Unix(c.Created, 0)
}

func (c Content) ModifiedAt() time.Time {
	return time.Unix(c.Modified, 0)
}

// CreateRequest is the body of POST /content.
type CreateRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	ParentID *string `json:"parentID,omitempty"`
}

// UpdateRequest is the body of PATCH /content/:id.
type UpdateRequest struct {
	Name       string  `json:"name,omitempty"`
	ParentID   *string `json:"parentID,omitempty"`
	RowVersion *int64  `json:"rowVersion,omitempty"`
}

// LookupRequest is the body of POST /content/lookup.
type LookupRequest struct {
	IDs []string `json:"ids"`
}
