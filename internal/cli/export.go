package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dalil/internal/domain"
	"dalil/internal/export"
)

func exportCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "export <id> <file>",
		Short: "Export a saved text as Markdown (.md) or HTML (.html)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, path := args[0], args[1]
			switch strings.ToLower(filepath.Ext(path)) {
			case ".md", ".markdown", ".html", ".htm":
			default:
				return fmt.Errorf("unsupported export format %q (use .md or .html)", filepath.Ext(path))
			}

			e, err := openEnv(cmd.Context(), *opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			t, err := e.store.GetText(cmd.Context(), id)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no saved text with id %q", id)
			}
			if err != nil {
				return err
			}
			if err := export.WriteFile(path, t); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", t.Title(), path)
			return err
		},
	}
	return c
}
