package main

import (
	"errors"
	"fmt"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Drop and rebuild the documentation index",
	Long: `Drop every chunk in the persisted collection and rebuild it from the
docs directory. Use after editing the documentation; the server only builds
the index when the collection is empty.`,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), s)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.index == nil {
		return errors.New(a.missingCredential)
	}
	if err := a.index.Rebuild(cmd.Context()); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt %q from %s\n", config.CollectionName, s.DocsDir)
	return nil
}
