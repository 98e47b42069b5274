// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/pkg/identity"
	"github.com/pfname/pfname/pkg/types"

	"github.com/spf13/cobra"
)

// newCompareCommand creates the `pfname compare` command.
func newCompareCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compare two package family names",
		Long: `Compare two package family names the way the package identity system does:
letter case is ignored in both the name and the publisher id.

Exit status is 0 when the names are equal, 2 when both are valid but
different, and 1 when either cannot be parsed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := identity.ParsePackageFamilyName(args[0])
			if err != nil {
				return app.fail(types.ExitFailure, issue.InvalidPackageFamilyNameId,
					parseError("parse package family name", args[0], issue.InvalidPackageFamilyNameId, err))
			}
			right, err := identity.ParsePackageFamilyName(args[1])
			if err != nil {
				return app.fail(types.ExitFailure, issue.InvalidPackageFamilyNameId,
					parseError("parse package family name", args[1], issue.InvalidPackageFamilyNameId, err))
			}

			result := comparison{
				Left:    left,
				Right:   right,
				Equal:   left.Equal(right),
				Compare: left.Compare(right),
			}
			if err := writeDocument(app.stdout, app.settings.format, result); err != nil {
				return err
			}

			if !result.Equal {
				app.settings.logger.Debug("package family names differ", "left", left, "right", right)
				if app.settings.verbose {
					app.renderIssue(issue.PackageFamilyNameMismatchId)
				}
				return &ExitError{Code: types.ExitMismatch}
			}
			return nil
		},
	}
}
