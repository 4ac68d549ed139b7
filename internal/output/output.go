// Package output writes run results to disk and renders run summaries.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/unilab-kr/boardmap/internal/discovery"
	"github.com/unilab-kr/boardmap/internal/models"
)

const dirPerm = 0o755

// WriteJSON writes v to path as pretty-printed JSON, creating parent
// directories as needed.
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteRunResult writes the augmented campus tree and the review ledger
// to their respective paths.
func WriteRunResult(result *discovery.Result, boardsPath, reviewPath string) error {
	if err := WriteJSON(boardsPath, result.Campuses); err != nil {
		return err
	}
	// The review file is always written, even when empty: its absence
	// would be ambiguous between "clean run" and "run never finished".
	review := result.Review
	if review == nil {
		review = []models.ReviewRecord{}
	}
	return WriteJSON(reviewPath, review)
}

// RenderRunSummary prints a per-campus summary table for a discovery run.
func RenderRunSummary(w io.Writer, result *discovery.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Campus", "Departments", "Boards", "Needs Review"})

	reviewByCampus := make(map[string]int)
	for _, record := range result.Review {
		reviewByCampus[record.Campus]++
	}

	for _, campus := range result.Campuses {
		deptCount, boardCount := 0, 0
		for _, college := range campus.Colleges {
			deptCount += len(college.Departments)
			for _, dept := range college.Departments {
				boardCount += len(dept.Boards)
			}
		}
		t.AppendRow(table.Row{campus.Campus, deptCount, boardCount, reviewByCampus[campus.Campus]})
	}

	t.AppendFooter(table.Row{"total", "", result.BoardCount, len(result.Review)})
	t.Render()
}
