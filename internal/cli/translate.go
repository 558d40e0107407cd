package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyquery/adql/translate"
)

// Error codes for translation failures.
const (
	ErrCodeDialect     = "E010" // unknown dialect
	ErrCodeTranslate   = "E011" // query contains constructs the dialect cannot express
	ErrCodeCheckFailed = "E012" // translated query rejected by the target engine
)

// TranslateResult holds the translated form of a query document.
type TranslateResult struct {
	Dialect string `json:"dialect"`
	Query   string `json:"query"`
	Checked bool   `json:"checked,omitempty"`
}

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Dialect string
	Check   bool
	DDL     []string
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <query.yaml>",
		Short: "Translate a query document into a target SQL dialect",
		Long: `Translate a YAML query document into a target SQL dialect.

Builds the query tree from the document and renders it for the chosen
dialect. With --check (sqlite only) the translated text is also prepared
against an in-memory database to catch syntax errors; --ddl statements
run first so referenced tables exist.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", "postgres", "target dialect (postgres|sqlite)")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "prepare the translated query against sqlite")
	cmd.Flags().StringArrayVar(&opts.DDL, "ddl", nil, "setup statement to run before --check (repeatable)")

	return cmd
}

func runTranslate(opts *TranslateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	name, dialect, err := dialectOf(opts.Dialect)
	if err != nil {
		if outErr := formatter.Error(ErrCodeDialect, err.Error()); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, err.Error(), err)
	}
	if opts.Check && name != "sqlite" {
		msg := "--check requires --dialect sqlite"
		if outErr := formatter.Error(ErrCodeDialect, msg); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, msg, nil)
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

	formatter.VerboseLog("Translating %s for %s", path, dialect.Name)

	sql, err := dialect.Translate(q)
	if err != nil {
		if outErr := formatter.Error(ErrCodeTranslate, err.Error()); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, err.Error(), err)
	}

	if opts.Check {
		if err := translate.CheckSyntax(cmd.Context(), opts.DDL, sql); err != nil {
			if outErr := formatter.Error(ErrCodeCheckFailed, err.Error()); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitFailure, err.Error(), err)
		}
		formatter.VerboseLog("Syntax check passed")
	}

	if opts.Format == "json" {
		return formatter.Success(TranslateResult{Dialect: name, Query: sql, Checked: opts.Check})
	}
	return formatter.Success(sql)
}

// dialectOf resolves the --dialect flag value, returning the flag spelling
// alongside the dialect (Dialect.Name is a display name, not the flag).
func dialectOf(name string) (string, *translate.Dialect, error) {
	switch name {
	case "postgres":
		return name, translate.Postgres(), nil
	case "sqlite":
		return name, translate.SQLite(), nil
	default:
		return "", nil, fmt.Errorf("unknown dialect %q: must be one of [postgres sqlite]", name)
	}
}
