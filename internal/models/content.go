package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// RootName is the reserved name of every customer's root directory. The
	// root's path equals its name.
	RootName = "Home"
	// PathSeparator joins a parent path and a child name.
	PathSeparator = "/"
	// MaxNameLength bounds Content.Name in characters.
	MaxNameLength = 255
	// DefaultMaxRows caps search results when the caller gives no limit.
	DefaultMaxRows = 50
)

// ContentType discriminates directories from files. It never changes after creation.
type ContentType uint8

const (
	ContentTypeDirectory ContentType = 0
	ContentTypeFile      ContentType = 1
)

func (t ContentType) String() string {
	switch t {
	case ContentTypeDirectory:
		return "Directory"
	case ContentTypeFile:
		return "File"
	default:
		return fmt.Sprintf("ContentType(%d)", uint8(t))
	}
}

func (t ContentType) Valid() bool {
	return t == ContentTypeDirectory || t == ContentTypeFile
}

// ParseContentType accepts "directory"/"file" in any case or the numeric form.
func ParseContentType(value string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "directory", "dir", "0":
		return ContentTypeDirectory, nil
	case "file", "1":
		return ContentTypeFile, nil
	default:
		return 0, fmt.Errorf("unknown content type %q", value)
	}
}

func (t ContentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either the name or the numeric discriminator.
func (t *ContentType) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var text string
	switch v := raw.(type) {
	case string:
		text = v
	case float64:
		text = fmt.Sprintf("%d", int(v))
	default:
		return fmt.Errorf("invalid content type %s", string(data))
	}
	parsed, err := ParseContentType(text)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Content is a node of a customer's tree. Path is denormalized from the
// parent chain and is unique per customer.
type Content struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID   `json:"customerID" gorm:"type:uuid;not null;index;uniqueIndex:idx_contents_path_customer,priority:2"`
	Name       string      `json:"name" gorm:"type:varchar(255);not null"`
	Path       string      `json:"path" gorm:"type:varchar(2048);not null;uniqueIndex:idx_contents_path_customer,priority:1"`
	Type       ContentType `json:"type" gorm:"not null;default:0;comment:0 - directory, 1 - file"`
	ParentID   *uuid.UUID  `json:"parentID,omitempty" gorm:"type:uuid;index"`
	Created    int64       `json:"created" gorm:"not null;default:0"`
	Modified   int64       `json:"modified" gorm:"not null;default:0"`
	RowVersion int64       `json:"rowVersion" gorm:"not null;default:1"`

	Children []Content `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Content) IsRoot() bool {
	return c.ParentID == nil
}

func (c *Content) IsDirectory() bool {
	return c.Type == ContentTypeDirectory
}

// ChildPath returns the path a child called name would have under c.
func (c *Content) ChildPath(name string) string {
	return c.Path + PathSeparator + name
}

// IsAncestorOf reports whether other sits somewhere below c.
func (c *Content) IsAncestorOf(other *Content) bool {
	return strings.HasPrefix(other.Path, c.Path+PathSeparator)
}
