package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dalil/internal/analytics"
	"dalil/internal/directory"
	"dalil/internal/domain"
	"dalil/internal/search"
	"dalil/internal/store"
)

func searchCmd(opts *options) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search saved texts, the directory and trends",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), *opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			ix, err := buildIndex(cmd.Context(), e.store)
			if err != nil {
				return err
			}
			hits := ix.Search(strings.Join(args, " "), limit)
			return printHits(cmd.OutOrStdout(), hits)
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of results")
	return c
}

// buildIndex indexes everything the console can search: saved texts, the
// built-in directory plus stored entries, and seeded plus stored trends.
func buildIndex(ctx context.Context, st *store.Store) (*search.Index, error) {
	ix := search.New()
	texts, err := st.ListTexts(ctx, "")
	if err != nil {
		return nil, err
	}
	ix.Add(search.FromTexts(texts)...)

	catalog, err := directory.Builtin()
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	for _, cat := range domain.DirectoryCategories {
		extra, err := st.ListDirectoryEntries(ctx, cat)
		if err != nil {
			return nil, err
		}
		ix.Add(search.FromDirectory(catalog.Entries(cat, extra...))...)
	}

	trends, err := st.ListTrends(ctx)
	if err != nil {
		return nil, err
	}
	ix.Add(search.FromTrends(append(analytics.SeedTrends(), trends...))...)
	return ix, nil
}

func printHits(w io.Writer, hits []search.Hit) error {
	if len(hits) == 0 {
		_, err := fmt.Fprintln(w, "Aucun résultat.")
		return err
	}
	for _, h := range hits {
		fmt.Fprintf(w, "%-10s %s", h.Kind, h.Title)
		if h.Kind == search.KindLegalText || h.Kind == search.KindProcedure {
			fmt.Fprintf(w, "  (%s)", h.ID)
		}
		fmt.Fprintln(w)
	}
	return nil
}
