package pathutil

import (
	"fmt"
	"strings"

	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/google/uuid"
)

// Resolve turns what the user typed into a node. An empty, "/" or "." path
// means the root. Paths may include the root name ("Home/Documents") or omit
// it ("/Documents"). A UUID is looked up by id.
func Resolve(client *api.Client, path string) (*api.Content, error) {
	path = strings.TrimSpace(path)

	if isUUID(path) {
		return lookupID(client, path)
	}

	root, err := fetch(client, "")
	if err != nil {
		return nil, fmt.Errorf("loading root: %w", err)
	}

	full := Absolute(root.Path, path)
	if full == root.Path {
		return root, nil
	}
	return fetch(client, full)
}

// Absolute anchors path under rootName unless it already starts there.
func Absolute(rootName, path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" || path == "." {
		return rootName
	}
	if path == rootName || strings.HasPrefix(path, rootName+"/") {
		return path
	}
	return rootName + "/" + path
}

// Split separates the last segment of path from the rest.
func Split(path string) (parent, name string) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

func fetch(client *api.Client, path string) (*api.Content, error) {
	var resp api.Response[api.Content]
	if err := client.Get(api.ContentPath(path), nil, &resp); err != nil {
		if api.IsNotFound(err) && path != "" {
			return nil, fmt.Errorf("not found: %s", path)
		}
		return nil, err
	}
	return &resp.Data, nil
}

func lookupID(client *api.Client, id string) (*api.Content, error) {
	var resp api.Response[[]api.Content]
	if err := client.Post("/content/lookup", api.LookupRequest{IDs: []string{id}}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("not found: %s", id)
	}
	return &resp.Data[0], nil
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
