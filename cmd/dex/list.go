package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/dex/internal/library"
)

type listOptions struct {
	search string
	pages  int
	all    bool
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print catalog entries",
		Long: `Print catalog entries one page at a time.

Entries are filtered by a case-insensitive substring of their name. When
nothing matches, close names are suggested instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Only show entries whose name contains TERM")
	cmd.Flags().IntVarP(&opts.pages, "pages", "p", 1, "Number of pages to show")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Show every matching entry")

	return cmd
}

func (a *app) runList(cmd *cobra.Command, opts listOptions) error {
	if opts.pages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", opts.pages)
	}

	view := library.NewCatalogView(a.services().Repository, a.logger)
	view.InitialLoad(cmd.Context())
	if err := view.Err(); err != nil {
		return err
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	view.SetSearchTerm(opts.search)
	for page := 1; opts.all || page < opts.pages; page++ {
		items := view.VisibleItems()
		if len(items) == 0 || !view.MaybeLoadMore(items[len(items)-1]) {
			break
		}
	}

	out := cmd.OutOrStdout()
	items := view.VisibleItems()
	if len(items) == 0 && opts.search != "" {
		fmt.Fprintf(out, "No entries match %q.\n", opts.search)
		if suggestions := view.Suggestions(); len(suggestions) > 0 {
			fmt.Fprintf(out, "Did you mean: %s?\n", strings.Join(suggestions, ", "))
		}
		return nil
	}

	for _, entry := range items {
		fmt.Fprintf(out, "%s  %s\n", entry.Number(), entry.Name)
	}
	if view.CanLoadMore() {
		fmt.Fprintf(cmd.ErrOrStderr(), "showing %d of %d (use --pages or --all for more)\n",
			len(items), view.FilteredCount())
	}
	return nil
}
