package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/docshare/filesystem/internal/cli/api"
)

// Out is where every printer writes. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

// JSON prints v as indented JSON.
func JSON(v interface{}) {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// ContentTable prints a slice of nodes as a human-readable table.
func ContentTable(contents []api.Content) {
	if len(contents) == 0 {
		fmt.Fprintln(Out, "No content found.")
		return
	}

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tPATH\tMODIFIED")

	for _, c := range contents {
		name := c.Name
		kind := "file"
		if c.IsDirectory() {
			name += "/"
			kind = "dir"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, kind, c.Path, RelativeTime(c.ModifiedAt()))
	}
	w.Flush()
}

// ContentDetail prints a single node's details.
func ContentDetail(c api.Content) {
	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", c.Name)
	fmt.Fprintf(w, "ID:\t%s\n", c.ID)
	fmt.Fprintf(w, "Path:\t%s\n", c.Path)
	fmt.Fprintf(w, "Type:\t%s\n", c.Type)
	if c.ParentID != nil {
		fmt.Fprintf(w, "Parent ID:\t%s\n", *c.ParentID)
	}
	if c.IsDirectory() {
		fmt.Fprintf(w, "Children:\t%d\n", len(c.Children))
	}
	fmt.Fprintf(w, "Version:\t%d\n", c.RowVersion)
	fmt.Fprintf(w, "Created:\t%s\n", c.CreatedAt().UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Modified:\t%s\n", c.ModifiedAt().UTC().Format(time.RFC3339))
	w.Flush()
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago", "3d ago").
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}
