package cmd

import (
	"context"
	"fmt"
	"time"

	"gallery-index/feature/gallery/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the index command
	indexRecursive bool
	indexTimeout   time.Duration
)

// indexCmd indexes directories once and waits for the save queue.
var indexCmd = &cobra.Command{
	Use:   "index [path...]",
	Short: "Index gallery directories once",
	Long: `Scans the given directories (the gallery root when none is given), saves
them to the index and exits once the save queue is empty.

Examples:
  # Index the root directory only
  index

  # Index a directory and everything below it
  index vacation --recursive`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexRecursive, "recursive", "r", false, "Also index every child directory")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 10*time.Minute, "Give up waiting for the save queue after this long")
	RootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), indexTimeout)
	defer cancel()
	a.gallery.Start(ctx)

	if len(args) == 0 {
		args = []string{""}
	}

	pending := args
	indexed := 0
	for len(pending) > 0 {
		rel := pending[0]
		pending = pending[1:]

		snap, err := a.gallery.IndexDirectory(ctx, rel)
		if err != nil {
			return err
		}
		indexed++
		a.logger.Info("Indexed directory",
			zap.String("directory", snap.String()),
			zap.Int("media", len(snap.Media)),
			zap.Int("children", len(snap.Directories)),
		)
		if !indexRecursive {
			continue
		}
		for _, child := range snap.Directories {
			pending = append(pending, models.RelativePath(child.Name, child.Path))
		}
	}

	if err := a.gallery.WaitReady(ctx); err != nil {
		return fmt.Errorf("waiting for the save queue: %w", err)
	}
	if notes := a.notifications.List(); len(notes) > 0 {
		return fmt.Errorf("indexing finished with %d problem(s), first: %s", len(notes), notes[0].Message)
	}

	v, err := a.version.Current(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Index up to date", zap.Int("directories", indexed), zap.Int64("version", v))
	return nil
}
