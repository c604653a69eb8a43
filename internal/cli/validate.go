package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strata/schema"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Schemas []string          `json:"schemas,omitempty"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// ValidationIssue is one schema document problem.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema-dir>",
		Short: "Validate CUE schema documents",
		Long: `Validate the permission-schema documents in a directory.

Compiles every declared schema, reporting unknown permissions, missing
fields structs, and CUE errors with positions. Collects all errors rather
than stopping at the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	result, loadErrors := schema.Load(schemaDir, schema.LoadModeCollectAll)

	// Directory-level failures (not found, no files) are command errors.
	if result == nil && len(loadErrors) > 0 {
		var loadErr *schema.LoadError
		if errors.As(loadErrors[0], &loadErr) {
			if outErr := formatter.Error(loadErr.Code, loadErr.Message, nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, "loading schema documents", loadErr)
		}
		return WrapExitError(ExitCommandError, "loading schema documents", loadErrors[0])
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, schemaDir)

	if len(loadErrors) > 0 {
		issues := make([]ValidationIssue, 0, len(loadErrors))
		for _, err := range loadErrors {
			issues = append(issues, toValidationIssue(err))
		}
		return outputValidationErrors(formatter, issues)
	}

	return outputValidateSuccess(formatter, result)
}

func toValidationIssue(err error) ValidationIssue {
	var loadErr *schema.LoadError
	if errors.As(err, &loadErr) {
		issue := ValidationIssue{Code: loadErr.Code, Message: loadErr.Message}
		if loadErr.Pos.IsValid() {
			issue.File = loadErr.Pos.Filename()
			issue.Line = loadErr.Pos.Line()
		}
		return issue
	}
	return ValidationIssue{Code: schema.ErrCodeGeneric, Message: err.Error()}
}

func outputValidationErrors(formatter *OutputFormatter, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		if err := formatter.Success(ValidationResult{Valid: false, Errors: issues}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "Validation failed: %d error(s)\n", len(issues))
		for _, issue := range issues {
			if issue.Line > 0 {
				fmt.Fprintf(formatter.Writer, "  [%s] %s:%d: %s\n", issue.Code, issue.File, issue.Line, issue.Message)
			} else {
				fmt.Fprintf(formatter.Writer, "  [%s] %s\n", issue.Code, issue.Message)
			}
		}
	}
	return WrapExitError(ExitFailure, "validation failed", nil)
}

func outputValidateSuccess(formatter *OutputFormatter, result *schema.LoadResult) error {
	names := make([]string, 0, len(result.Schemas))
	for _, s := range result.Schemas {
		names = append(names, string(s.ID))
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Schemas: names})
	}
	fmt.Fprintf(formatter.Writer, "Valid: %d schema(s)\n", len(names))
	for _, name := range names {
		fmt.Fprintf(formatter.Writer, "  %s\n", name)
	}
	return nil
}
