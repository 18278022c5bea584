package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dalil/internal/domain"
	"dalil/internal/export"
	"dalil/internal/wizard"
)

type generateFlags struct {
	context     string
	reference   string
	docType     string
	keywords    string
	description string
	format      string
	save        bool
	quiet       bool
	timeout     time.Duration
}

func generateCmd(opts *options) *cobra.Command {
	var f generateFlags

	c := &cobra.Command{
		Use:   "generate",
		Short: "Run the auto-fill generator without the console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docType, err := parseDocumentType(f.docType)
			if err != nil {
				return err
			}
			if f.format != "json" && f.format != "markdown" {
				return fmt.Errorf("unknown format %q (json or markdown)", f.format)
			}

			e, err := openEnv(cmd.Context(), *opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			if f.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, f.timeout)
				defer cancel()
			}

			tag := domain.ParseContext(f.context)
			s, err := wizard.New(tag, e.timing()).SetInput(wizard.Input{
				Reference:    f.reference,
				DocumentType: docType,
				Keywords:     f.keywords,
				Description:  f.description,
			})
			if err != nil {
				return err
			}

			progress := cmd.ErrOrStderr()
			if f.quiet {
				progress = io.Discard
			}
			s, err = wizard.Drive(ctx, s, e.timing(), e.gen, func(s wizard.State) {
				if s.Stage() == wizard.Processing {
					fmt.Fprintf(progress, "\rGénération en cours… %3d%%", s.Progress())
				}
			})
			fmt.Fprintln(progress)
			if err != nil {
				return err
			}
			if s.Stage() == wizard.Failed {
				return s.Err()
			}
			res, _ := s.Result()

			draft := domain.NewFormDraft().
				Set(domain.FieldReference, f.reference).
				Set(domain.FieldType, docType.Label()).
				ApplyGeneration(res)
			if f.save {
				kind := domain.KindLegalText
				if tag == domain.ContextProcedures {
					kind = domain.KindProcedure
				}
				t, err := e.store.SaveText(ctx, kind, draft)
				if err != nil {
					return err
				}
				fmt.Fprintf(progress, "Enregistré: %s\n", t.ID)
			}
			return printResult(cmd.OutOrStdout(), f.format, res, draft)
		},
	}

	c.Flags().StringVar(&f.context, "context", string(domain.ContextLegalTexts), "generation context (legal-texts, procedures, general)")
	c.Flags().StringVar(&f.reference, "reference", "", "reference of the text, e.g. \"Loi n° 24-15\"")
	c.Flags().StringVar(&f.docType, "type", string(domain.DocLaw), "document type (law, decree, order, ordinance, circular, decision)")
	c.Flags().StringVar(&f.keywords, "keywords", "", "comma separated keywords")
	c.Flags().StringVar(&f.description, "description", "", "free-text description")
	c.Flags().StringVarP(&f.format, "format", "f", "json", "output format (json, markdown)")
	c.Flags().BoolVar(&f.save, "save", false, "save the result as a new text")
	c.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "hide the progress line")
	c.Flags().DurationVar(&f.timeout, "timeout", 2*time.Minute, "give up after this long (0 disables)")
	return c
}

// parseDocumentType accepts the canonical name or the French label.
func parseDocumentType(s string) (domain.DocumentType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.DocLaw, nil
	}
	for _, t := range domain.DocumentTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

func printResult(w io.Writer, format string, res domain.GenerationResult, draft domain.FormDraft) error {
	if format == "markdown" {
		_, err := io.WriteString(w, export.Markdown(domain.LegalText{Draft: draft}))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
