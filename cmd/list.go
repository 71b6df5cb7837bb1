package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukelive/internal/db"
	"github.com/chriserin/cukelive/internal/ui"
)

var outlineFlag bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), outlineFlag)
	},
}

func init() {
	listCmd.Flags().BoolVar(&outlineFlag, "outlines", false, "Show only scenario outlines")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	fileName string
	name     string
	steps    int
	outline  bool
}

func RunList(w io.Writer, outlinesOnly bool) error {
	if _, err := os.Stat(workDir); os.IsNotExist(err) {
		return fmt.Errorf("run `cukelive init` first")
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT f.file_path, s.name, s.outline,
			(SELECT COUNT(*) FROM steps WHERE scenario_id = s.id) AS step_count
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.line
	`)
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		var outline int
		if err := rows.Scan(&filePath, &r.name, &outline, &r.steps); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)
		r.outline = outline != 0

		if outlinesOnly && !r.outline {
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	// Compute column widths
	fileWidth, nameWidth := 0, 0
	for _, r := range results {
		if len(r.fileName) > fileWidth {
			fileWidth = len(r.fileName)
		}
		if len(r.name) > nameWidth {
			nameWidth = len(r.name)
		}
	}

	for _, r := range results {
		ui.ListRow(w, r.fileName, r.name, r.steps, fileWidth, nameWidth)
	}

	return nil
}
