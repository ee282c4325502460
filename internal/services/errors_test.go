package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/docshare/filesystem/internal/repository"
	"github.com/google/uuid"
)

func TestContentErrorMatching(t *testing.T) {
	id := uuid.New()
	err := fmt.Errorf("wrapped: %w", notFoundByID(uuid.New(), id))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatal("expected wrapped error not to match ErrConflict")
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found kind, got %s", KindOf(err))
	}
	if !strings.Contains(err.Error(), id.String()) {
		t.Fatalf("expected message to carry content id, got %q", err.Error())
	}
	if KindOf(errors.New("plain")) != KindUnexpected {
		t.Fatal("expected plain errors to be unexpected")
	}
}

func TestTranslateCommitError(t *testing.T) {
	customerID := uuid.New()
	contentID := uuid.New()

	conflict := translateCommitError(customerID, "Home/Docs", &repository.ConflictError{CustomerID: customerID, ContentID: contentID, Name: "Docs"})
	var contentErr *ContentError
	if !errors.As(conflict, &contentErr) {
		t.Fatalf("expected ContentError, got %T", conflict)
	}
	if contentErr.Kind != KindConflict || contentErr.ContentID == nil || *contentErr.ContentID != contentID {
		t.Fatalf("unexpected conflict translation %+v", contentErr)
	}

	duplicate := translateCommitError(customerID, "Home/Docs", fmt.Errorf("%w: unique", repository.ErrDuplicatePath))
	if !errors.Is(duplicate, ErrPathExists) {
		t.Fatalf("expected path exists, got %v", duplicate)
	}

	other := errors.New("disk full")
	translated := translateCommitError(customerID, "Home/Docs", other)
	if !errors.Is(translated, ErrUnexpected) || !errors.Is(translated, other) {
		t.Fatalf("expected unexpected wrapping the cause, got %v", translated)
	}
}
