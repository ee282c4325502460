package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docshare/filesystem/internal/repository"
	"github.com/google/uuid"
)

type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindNotFound
	KindRootExists
	KindConflict
	KindInvalid
	KindPathExists
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindRootExists:
		return "root_exists"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindPathExists:
		return "path_exists"
	default:
		return "unexpected"
	}
}

var (
	ErrNotFound   = &ContentError{Kind: KindNotFound}
	ErrRootExists = &ContentError{Kind: KindRootExists}
	ErrConflict   = &ContentError{Kind: KindConflict}
	ErrInvalid    = &ContentError{Kind: KindInvalid}
	ErrPathExists = &ContentError{Kind: KindPathExists}
	ErrUnexpected = &ContentError{Kind: KindUnexpected}
)

// ContentError is the single failure type of the content services. Kind
// decides how callers react; the remaining fields carry whatever context the
// failing operation had.
type ContentError struct {
	Kind       ErrorKind
	CustomerID uuid.UUID
	ContentID  *uuid.UUID
	Path       string
	Name       string
	Err        error
}

func (e *ContentError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindNotFound:
		b.WriteString("content not found")
	case KindRootExists:
		b.WriteString("root directory already exists")
	case KindConflict:
		b.WriteString("content was modified by another request")
	case KindInvalid:
		b.WriteString("invalid content request")
	case KindPathExists:
		b.WriteString("content path already exists")
	default:
		b.WriteString("unexpected content failure")
	}

	if e.CustomerID != uuid.Nil {
		fmt.Fprintf(&b, " customer=%s", e.CustomerID)
	}
	if e.ContentID != nil {
		fmt.Fprintf(&b, " id=%s", *e.ContentID)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " path=%q", e.Path)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, " name=%q", e.Name)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind.
func (e *ContentError) Is(target error) bool {
	t, ok := target.(*ContentError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first ContentError in err's chain, or
// KindUnexpected.
func KindOf(err error) ErrorKind {
	var contentErr *ContentError
	if errors.As(err, &contentErr) {
		return contentErr.Kind
	}
	return KindUnexpected
}

func notFoundByID(customerID, id uuid.UUID) error {
	return &ContentError{Kind: KindNotFound, CustomerID: customerID, ContentID: &id}
}

func notFoundByPath(customerID uuid.UUID, path string) error {
	return &ContentError{Kind: KindNotFound, CustomerID: customerID, Path: path}
}

func invalid(customerID uuid.UUID, name string, format string, args ...interface{}) error {
	return &ContentError{Kind: KindInvalid, CustomerID: customerID, Name: name, Err: fmt.Errorf(format, args...)}
}

func unexpected(customerID uuid.UUID, err error) error {
	return &ContentError{Kind: KindUnexpected, CustomerID: customerID, Err: err}
}

// translateCommitError maps unit-of-work failures to content errors.
func translateCommitError(customerID uuid.UUID, path string, err error) error {
	var conflict *repository.ConflictError
	switch {
	case errors.As(err, &conflict):
		id := conflict.ContentID
		return &ContentError{Kind: KindConflict, CustomerID: conflict.CustomerID, ContentID: &id, Name: conflict.Name, Err: err}
	case errors.Is(err, repository.ErrDuplicatePath):
		return &ContentError{Kind: KindPathExists, CustomerID: customerID, Path: path, Err: err}
	default:
		return unexpected(customerID, err)
	}
}
