package controller

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/natepiano/brp-mutate/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayTypes prints the sorted type listing, one per line, short form
// first.
func (s *SimpleUI) DisplayTypes(types []m.TypeName) error {
	if len(types) == 0 {
		s.printf("No types found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Type", "Full Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, t := range types {
		table.Append([]string{t.Short(), string(t)})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(types))})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayAnalysis prints the path table for one root type, root-first.
func (s *SimpleUI) DisplayAnalysis(root m.TypeName, paths map[string]m.PathEntry) error {
	s.printf("Mutation paths for %s\n", root)

	keys := make([]string, 0, len(paths))
	for key := range paths {
		keys = append(keys, key)
	}

	m.SortPaths(keys)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Type", "Kind", "Status", "Note"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	mutable := 0

	for _, key := range keys {
		entry := paths[key]
		if entry.Status == m.Mutable {
			mutable++
		}

		table.Append([]string{
			displayPath(key),
			entry.Type.Short(),
			string(entry.Kind),
			string(entry.Status),
			entryNote(entry),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(keys)),
		"", "",
		fmt.Sprintf("%d mutable", mutable),
		"",
	})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayJSON emits the value as indented JSON.
func (s *SimpleUI) DisplayJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	s.printf("%s\n", data)

	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}

	return path
}

// entryNote summarizes the reason or requirement for the table's note
// column.
func entryNote(entry m.PathEntry) string {
	switch {
	case entry.Support != nil:
		return entry.Support.Describe()
	case entry.Requirement != nil:
		return entry.Requirement.Description
	case len(entry.ExampleGroups) > 1:
		return fmt.Sprintf("%d variant groups", len(entry.ExampleGroups))
	default:
		return ""
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
