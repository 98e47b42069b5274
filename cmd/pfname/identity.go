// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/pkg/identity"
	"github.com/pfname/pfname/pkg/types"

	"github.com/spf13/cobra"
)

// newIDCommand creates the `pfname id` command.
func newIDCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "id <publisher>",
		Short: "Derive the publisher id of a publisher name",
		Long: `Derive the 13-character publisher id of a publisher name.

The publisher is usually the Subject of the signing certificate, for example
"CN=Contoso Software, O=Contoso Corporation, C=US". Any text is accepted,
including the empty string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			publisher := args[0]
			id := identity.DerivePublisherID(publisher)
			app.settings.logger.Debug("derived publisher id", "publisher", publisher, "publisher_id", id)

			return writeDocument(app.stdout, app.settings.format, identityRecord{
				Publisher:   &publisher,
				PublisherID: id,
			})
		},
	}
}

// newNewCommand creates the `pfname new` command.
func newNewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name> <publisher>",
		Short: "Build a package family name",
		Long: `Build the package family name of a package from its name and publisher.

The result has the form <name>_<publisherid>. A name that itself contains
'_' produces a package family name that cannot be parsed back into the same
name; pfname warns about it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, publisher := args[0], args[1]

			if strings.ContainsRune(name, identity.Separator) {
				app.settings.logger.Warn("package name contains the separator, the result will not parse back to this name", "name", name)
				if app.settings.verbose {
					app.renderIssue(issue.UnderscoreInPackageNameId)
				}
			}

			pfn := identity.NewPackageFamilyName(name, publisher)
			app.settings.logger.Debug("built package family name",
				"name", name, "publisher", publisher, "package_family_name", pfn)

			return writeDocument(app.stdout, app.settings.format, newFamilyRecord(publisher, pfn))
		},
	}
}

// newParseCommand creates the `pfname parse` command.
func newParseCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <package-family-name>",
		Short: "Validate and split a package family name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pfn, err := identity.ParsePackageFamilyName(args[0])
			if err != nil {
				return app.fail(types.ExitFailure, issue.InvalidPackageFamilyNameId,
					parseError("parse package family name", args[0], issue.InvalidPackageFamilyNameId, err))
			}

			return writeDocument(app.stdout, app.settings.format, identityRecord{
				Name:              pfn.Name(),
				PublisherID:       pfn.PublisherID(),
				PackageFamilyName: &pfn,
			})
		},
	}
}

// newCheckCommand creates the `pfname check` command.
func newCheckCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <publisher-id>",
		Short: "Validate a publisher id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identity.ParsePublisherID(args[0])
			if err != nil {
				return app.fail(types.ExitFailure, issue.InvalidPublisherIdId,
					parseError("parse publisher id", args[0], issue.InvalidPublisherIdId, err))
			}

			if id.IsDefault() {
				app.settings.logger.Info("publisher id is the all-zero placeholder", "publisher_id", id)
			}

			return writeDocument(app.stdout, app.settings.format, identityRecord{PublisherID: id})
		},
	}
}

// parseError wraps an identity parse error with suggestions that match its kind.
func parseError(operation, input string, id issue.Id, err error) error {
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(input).
		WithIssue(id).
		WithSuggestions(parseErrorSuggestions(err)...).
		Wrap(err).
		BuildError()
}

func parseErrorSuggestions(err error) []string {
	switch {
	case errors.Is(err, identity.ErrNoSeparator):
		return []string{
			"A package family name has the form <name>_<publisherid>",
			"Build one with 'pfname new <name> <publisher>'",
		}
	case errors.Is(err, identity.ErrInvalidCharacters):
		return []string{
			"Publisher ids use the digits 0-9 and the letters a-z except i, l, o and u",
			"Derive the id with 'pfname id <publisher>' instead of typing it",
		}
	case errors.Is(err, identity.ErrInvalidLength):
		return []string{
			fmt.Sprintf("Publisher ids are exactly %d characters long", identity.PublisherIDLength),
			"Derive the id with 'pfname id <publisher>' instead of typing it",
		}
	default:
		return nil
	}
}
