// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasklist/internal/task"
)

const (
	// Header is the first line of a printed task list.
	Header = "Task list:"

	// CompletedMarker follows the description of a completed task.
	CompletedMarker = "(Completed)"
)

// FormatTaskList writes the header followed by one line per task.
func FormatTaskList(w io.Writer, tasks []task.Task) {
	fmt.Fprintln(w, Header)
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatTask formats a single task line.
// Format: "- {DESCRIPTION} {MARKER}\n". MARKER is empty for open tasks,
// so open tasks keep the trailing space.
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "- %s %s\n", normalizeDescription(t.Description), marker(t))
}

func marker(t task.Task) string {
	if t.IsCompleted {
		return CompletedMarker
	}
	return ""
}

// normalizeDescription keeps a description on one line.
// Empty descriptions are printed as-is.
func normalizeDescription(description string) string {
	description = strings.ReplaceAll(description, "\r", " ")
	return strings.ReplaceAll(description, "\n", " ")
}
