package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/cukelive/internal/config"
	"github.com/chriserin/cukelive/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cukelive in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	// .cukelive/ directory
	_, err := os.Stat(workDir)
	dirExists := err == nil
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", workDir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", workDir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", workDir)
	}

	// config file
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(configPath, config.Default()); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
		fmt.Fprintf(w, "%s created\n", configPath)
	} else {
		fmt.Fprintf(w, "%s already exists\n", configPath)
	}

	// registry database
	_, err = os.Stat(dbPath)
	dbExists := err == nil
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", dbPath)
	} else {
		fmt.Fprintf(w, "%s created\n", dbPath)
	}

	// gitignore
	msgs, err := ensureGitignore()
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore() ([]string, error) {
	const entry = dbPath

	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
