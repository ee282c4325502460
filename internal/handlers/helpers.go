package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/docshare/filesystem/internal/models"
	"github.com/docshare/filesystem/internal/services"
	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// normalizeContentPath turns the wildcard part of a content URL into a stored
// path. Surrounding separators are dropped.
func normalizeContentPath(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", err
	}
	return strings.Trim(decoded, models.PathSeparator), nil
}

// contentURL is the address of the node at path for GET /content/*.
func contentURL(customerID uuid.UUID, path string) string {
	segments := strings.Split(path, models.PathSeparator)
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/api/" + customerID.String() + "/content/" + strings.Join(segments, "/")
}

func contentIDURL(customerID, id uuid.UUID) string {
	return "/api/" + customerID.String() + "/content/" + id.String()
}

// parseIfMatch reads a row version from an If-Match header such as `"3"` or
// `3`. An empty header yields nil.
func parseIfMatch(value string) (*int64, error) {
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "W/"))
	value = strings.Trim(value, `"`)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseSort reads a sort query such as "type,name:desc". An empty value
// yields fallback.
func parseSort(raw string, fallback []services.SortDirective) ([]services.SortDirective, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	var directives []services.SortDirective
	for _, part := range strings.Split(raw, ",") {
		name, direction, _ := strings.Cut(strings.TrimSpace(part), ":")
		field, err := services.ParseSortField(name)
		if err != nil {
			return nil, err
		}

		directive := services.SortDirective{Field: field}
		switch strings.ToLower(strings.TrimSpace(direction)) {
		case "", "asc":
		case "desc":
			directive.Descending = true
		default:
			return nil, fmt.Errorf("unknown sort direction %q", direction)
		}
		directives = append(directives, directive)
	}
	return directives, nil
}
