package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/docshare/filesystem/internal/cli/api"
	"github.com/docshare/filesystem/internal/cli/output"
	"github.com/docshare/filesystem/internal/cli/pathutil"
	"github.com/spf13/cobra"
)

var (
	flagRetries uint64

	retryInterval = 500 * time.Millisecond
)

var mvCmd = &cobra.Command{
	Use:   "mv <source> <destination>",
	Short: "Move or rename a file/directory",
	Long: `Move a node into another directory, rename it, or both.

  contentctl mv /Documents/report.pdf /Archive        Move into an existing directory
  contentctl mv /Documents/old.pdf new.pdf             Rename in place
  contentctl mv /Documents/old.pdf /Archive/new.pdf    Move and rename

Everything below a moved or renamed directory follows it. When another
client changed the source in the meantime the update is retried against the
fresh version.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCustomer(); err != nil {
			return err
		}

		src, err := pathutil.Resolve(apiClient, args[0])
		if err != nil {
			return fmt.Errorf("resolving source: %w", err)
		}
		if src.IsRoot() {
			return fmt.Errorf("cannot move root directory")
		}

		body, err := moveRequest(args[1])
		if err != nil {
			return err
		}

		updated, err := updateWithRetry(src, body)
		if err != nil {
			return fmt.Errorf("moving/renaming: %w", err)
		}

		if flagJSON {
			output.JSON(updated)
			return nil
		}

		printf("Updated: %s -> %s\n", src.Path, updated.Path)
		return nil
	},
}

// moveRequest decides what dest means: an existing directory to move into,
// a parent path plus a new name, or a bare new name.
func moveRequest(dest string) (api.UpdateRequest, error) {
	if target, err := pathutil.Resolve(apiClient, dest); err == nil && target.IsDirectory() {
		return api.UpdateRequest{ParentID: &target.ID}, nil
	}

	parentPath, name := pathutil.Split(dest)
	if name == "" {
		return api.UpdateRequest{}, fmt.Errorf("destination %q has no name", dest)
	}
	if parentPath == "" {
		return api.UpdateRequest{Name: name}, nil
	}

	parent, err := pathutil.Resolve(apiClient, parentPath)
	if err != nil {
		return api.UpdateRequest{}, fmt.Errorf("resolving destination: %w", err)
	}
	if !parent.IsDirectory() {
		return api.UpdateRequest{}, fmt.Errorf("%s is not a directory", parent.Path)
	}
	return api.UpdateRequest{Name: name, ParentID: &parent.ID}, nil
}

func updateWithRetry(src *api.Content, body api.UpdateRequest) (*api.Content, error) {
	current := src
	var updated api.Content

	operation := func() error {
		if current == nil {
			fresh, err := pathutil.Resolve(apiClient, src.ID)
			if err != nil {
				return backoff.Permanent(err)
			}
			current = fresh
		}

		req := body
		req.RowVersion = &current.RowVersion

		var resp api.Response[api.Content]
		err := apiClient.Patch("/content/"+current.ID, req, nil, &resp)
		if err == nil {
			updated = resp.Data
			return nil
		}
		if api.IsConflict(err) {
			current = nil
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInterval
	notify := func(err error, wait time.Duration) {
		fmt.Fprintf(os.Stderr, "%s changed concurrently, retrying in %s\n", src.Path, wait.Round(time.Millisecond))
	}

	if err := backoff.RetryNotify(operation, backoff.WithMaxRetries(b, flagRetries), notify); err != nil {
		return nil, err
	}
	return &updated, nil
}

func init() {
	mvCmd.Flags().Uint64Var(&flagRetries, "retries", 3, "Retries when the source changed concurrently")
	rootCmd.AddCommand(mvCmd)
}
