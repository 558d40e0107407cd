package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// RenderResult holds the rendered form of a query document.
type RenderResult struct {
	Query string `json:"query"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <query.yaml>",
		Short: "Render a query document as canonical ADQL",
		Long: `Render a YAML query document as canonical ADQL text.

Builds the query tree from the document, validating type compatibility
and structural rules along the way, then serializes it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRender(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	q, err := LoadQuery(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			if outErr := formatter.Error(loadErr.Code, loadErr.Message); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitFailure, loadErr.Message, err)
		}
		return err
	}

	formatter.VerboseLog("Loaded query document %s", path)

	if opts.Format == "json" {
		return formatter.Success(RenderResult{Query: q.ToADQL()})
	}
	return formatter.Success(q.ToADQL())
}
