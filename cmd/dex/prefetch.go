package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/mmcdole/dex/internal/domain"
)

func newPrefetchCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Load every catalog sprite through the image cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPrefetch(cmd, workers)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 8, "Number of concurrent downloads")
	return cmd
}

func (a *app) runPrefetch(cmd *cobra.Command, workers int) error {
	if workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", workers)
	}

	ctx := cmd.Context()
	c := a.services()
	entries, err := c.Repository.FetchCatalog(ctx)
	if err != nil {
		return err
	}

	var loaded, failed atomic.Int64
	p := pool.New().WithContext(ctx).WithMaxGoroutines(workers)
	for _, entry := range entries {
		entry := entry
		p.Go(func(ctx context.Context) error {
			if _, err := c.Images.Load(ctx, entry.ImageURL); err != nil {
				if domain.IsCanceled(err) {
					return err
				}
				failed.Add(1)
				a.logger.Warn("sprite prefetch failed", "id", entry.ID, "url", entry.ImageURL, "error", err)
				return nil
			}
			loaded.Add(1)
			return nil
		})
	}
	err = p.Wait()

	c.Close()
	a.logger.Debug("prefetch finished", "loaded", loaded.Load(), "failed", failed.Load(), "cached", c.CachedImages())
	fmt.Fprintf(cmd.OutOrStdout(), "prefetched %d of %d sprites (%d failed)\n",
		loaded.Load(), len(entries), failed.Load())
	return err
}
