package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukelive/internal/config"
	"github.com/chriserin/cukelive/internal/db"
	"github.com/chriserin/cukelive/internal/gherkin"
	"github.com/chriserin/cukelive/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan the features directory and register scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer) error {
	if _, err := os.Stat(workDir); os.IsNotExist(err) {
		return fmt.Errorf("run `cukelive init` first")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(filepath.Join(cfg.FeaturesDir, "*.feature"))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.FeaturesDir, err)
	}
	sort.Strings(matches)

	count := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		doc, parseErrs := gherkin.Parse(path, data)

		fileID, created, err := upsertFile(sqlDB, path)
		if err != nil {
			return err
		}
		if created {
			ui.NewLine(w, path)
		} else {
			ui.TrkLine(w, path)
		}

		if err := syncScenarios(sqlDB, fileID, doc); err != nil {
			return fmt.Errorf("syncing %s: %w", path, err)
		}
		for _, pe := range parseErrs {
			fmt.Fprintf(w, "  parse error %s:%d: %s\n", path, pe.Line, pe.Message)
		}
		count++
	}

	ui.SummaryLine(w, count)
	return nil
}

func upsertFile(sqlDB *sql.DB, path string) (int64, bool, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := sqlDB.Exec(`INSERT INTO files (file_path) VALUES (?)`, path)
		if err != nil {
			return 0, false, fmt.Errorf("inserting %s: %w", path, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("inserting %s: %w", path, err)
		}
		return id, true, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying %s: %w", path, err)
	}
	if _, err := sqlDB.Exec(`UPDATE files SET updated_at = datetime('now') WHERE id = ?`, id); err != nil {
		return 0, false, fmt.Errorf("updating %s: %w", path, err)
	}
	return id, false, nil
}

// syncScenarios reconciles the registry rows for one file with its current
// parse: scenarios are keyed by source line, steps are replaced wholesale.
func syncScenarios(sqlDB *sql.DB, fileID int64, doc *gherkin.Document) error {
	seen := make(map[int]bool)
	for _, sd := range doc.Feature.Scenarios {
		seen[sd.Line] = true

		outline := 0
		if sd.Outline {
			outline = 1
		}

		var scenarioID int64
		err := sqlDB.QueryRow(`SELECT id FROM scenarios WHERE file_id = ? AND line = ?`, fileID, sd.Line).Scan(&scenarioID)
		if err == sql.ErrNoRows {
			res, err := sqlDB.Exec(
				`INSERT INTO scenarios (file_id, name, line, outline) VALUES (?, ?, ?, ?)`,
				fileID, sd.Name, sd.Line, outline,
			)
			if err != nil {
				return fmt.Errorf("inserting scenario %q: %w", sd.Name, err)
			}
			scenarioID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("inserting scenario %q: %w", sd.Name, err)
			}
		} else if err != nil {
			return fmt.Errorf("querying scenario at line %d: %w", sd.Line, err)
		} else {
			_, err = sqlDB.Exec(
				`UPDATE scenarios SET name = ?, outline = ?, updated_at = datetime('now') WHERE id = ?`,
				sd.Name, outline, scenarioID,
			)
			if err != nil {
				return fmt.Errorf("updating scenario %q: %w", sd.Name, err)
			}
		}

		if _, err := sqlDB.Exec(`DELETE FROM steps WHERE scenario_id = ?`, scenarioID); err != nil {
			return fmt.Errorf("clearing steps for scenario %d: %w", scenarioID, err)
		}
		for _, st := range sd.Steps {
			_, err := sqlDB.Exec(
				`INSERT INTO steps (scenario_id, keyword, text, line) VALUES (?, ?, ?, ?)`,
				scenarioID, st.Keyword, st.Text, st.Line,
			)
			if err != nil {
				return fmt.Errorf("inserting step %q: %w", st.Text, err)
			}
		}
	}

	// Remove scenarios that no longer exist in the file.
	rows, err := sqlDB.Query(`SELECT id, line FROM scenarios WHERE file_id = ?`, fileID)
	if err != nil {
		return fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var stale []int64
	for rows.Next() {
		var id int64
		var line int
		if err := rows.Scan(&id, &line); err != nil {
			return fmt.Errorf("scanning scenario row: %w", err)
		}
		if !seen[line] {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating scenarios: %w", err)
	}

	for _, id := range stale {
		if _, err := sqlDB.Exec(`DELETE FROM steps WHERE scenario_id = ?`, id); err != nil {
			return fmt.Errorf("deleting stale steps: %w", err)
		}
		if _, err := sqlDB.Exec(`DELETE FROM scenarios WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting stale scenario: %w", err)
		}
	}

	return nil
}
