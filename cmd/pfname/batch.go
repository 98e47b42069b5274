// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/pkg/cueutil"
	"github.com/pfname/pfname/pkg/identity"
	"github.com/pfname/pfname/pkg/types"

	"github.com/spf13/cobra"
)

//go:embed batch_schema.cue
var batchSchema string

type (
	// batchFile is the decoded form of a #Batch CUE document.
	batchFile struct {
		Identities []batchIdentity `json:"identities"`
	}

	batchIdentity struct {
		Name      string `json:"name"`
		Publisher string `json:"publisher"`
	}
)

// newBatchCommand creates the `pfname batch` command.
func newBatchCommand(app *App) *cobra.Command {
	var maxSize int64

	batchCmd := &cobra.Command{
		Use:   "batch <file.cue>",
		Short: "Derive package family names for every identity in a CUE file",
		Long: `Derive package family names for every identity listed in a CUE file.

The file must match this schema:

  identities: [...{
  	name:      string & !=""
  	publisher: string
  }]

Identities whose package family names are equal ignoring case are reported
once, in the order of their first appearance. The output is sorted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadBatch(args[0], maxSize)
			if err != nil {
				return app.fail(types.ExitFailure, 0, err)
			}

			for _, r := range set.Identities {
				if strings.ContainsRune(r.Name, identity.Separator) {
					app.settings.logger.Warn("package name contains the separator, the result will not parse back to this name", "name", r.Name)
				}
			}
			app.settings.logger.Debug("derived batch", "file", args[0], "identities", len(set.Identities))

			return writeDocument(app.stdout, app.settings.format, set)
		},
	}

	batchCmd.Flags().Int64Var(&maxSize, "max-size", cueutil.DefaultMaxFileSize, "reject batch files larger than this many bytes")

	return batchCmd
}

// loadBatch reads and validates a batch file of at most maxSize bytes and
// derives its records.
func loadBatch(path string, maxSize int64) (recordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("read batch file").
			WithResource(path).
			Wrap(err)
		if errors.Is(err, fs.ErrNotExist) {
			ctx = ctx.WithIssue(issue.BatchFileNotFoundId).
				WithSuggestion("Verify the file path is correct")
		}
		return recordSet{}, ctx.BuildError()
	}

	batch, err := cueutil.Decode[batchFile](batchSchema, "#Batch", data,
		cueutil.WithFilename(path),
		cueutil.WithMaxFileSize(maxSize),
	)
	if errors.Is(err, cueutil.ErrFileTooLarge) {
		return recordSet{}, issue.NewErrorContext().
			WithOperation("read batch file").
			WithSuggestion("Split the identities over several files").
			WithSuggestion("Raise the limit with --max-size").
			Wrap(err).
			BuildError()
	}
	if err != nil {
		return recordSet{}, issue.NewErrorContext().
			WithOperation("parse batch file").
			WithResource(path).
			WithIssue(issue.BatchFileParseErrorId).
			WithSuggestions(
				"Each entry needs a non-empty name and a publisher",
				"Only the fields identities, name and publisher are allowed",
			).
			Wrap(err).
			BuildError()
	}

	return deriveBatch(batch.Identities), nil
}

// deriveBatch builds one record per distinct Package Family Name, keeping the
// first occurrence, and sorts the records by Package Family Name.
func deriveBatch(entries []batchIdentity) recordSet {
	seen := make(map[string]struct{}, len(entries))
	records := make([]identityRecord, 0, len(entries))

	for _, e := range entries {
		pfn := identity.NewPackageFamilyName(e.Name, e.Publisher)
		if _, dup := seen[pfn.Key()]; dup {
			continue
		}
		seen[pfn.Key()] = struct{}{}
		records = append(records, newFamilyRecord(e.Publisher, pfn))
	}

	slices.SortStableFunc(records, func(a, b identityRecord) int {
		return a.PackageFamilyName.Compare(*b.PackageFamilyName)
	})

	return recordSet{Identities: records}
}
