// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	InvalidPublisherIdId Id = iota + 1
	InvalidPackageFamilyNameId
	UnderscoreInPackageNameId
	PackageFamilyNameMismatchId
	BatchFileNotFoundId
	BatchFileParseErrorId
	ConfigLoadFailedId
	InvalidOutputFormatId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal markdown. stylePath is any glamour
// style name ("auto", "dark", "light", ...) or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- " + string(link))
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- " + string(link))
		}
	}
	return render(md.String(), stylePath)
}

const packageIdentityDocs HttpLink = "https://learn.microsoft.com/windows/apps/desktop/modernize/package-identity-overview"

var (
	render = glamour.Render

	invalidPublisherIdIssue = &Issue{
		id: InvalidPublisherIdId,
		mdMsg: `
# Invalid publisher id!

A publisher id is exactly 13 characters from the alphabet
` + "`0123456789abcdefghjkmnpqrstvwxyz`" + `, in any letter case.
The letters i, l, o and u are never used.

## Things you can try:
- Check for a mistyped character: ` + "`1`" + ` instead of ` + "`l`" + `, ` + "`0`" + ` instead of ` + "`o`" + `
- Derive the id from the publisher distinguished name instead of typing it:
~~~
$ pfname id "CN=Contoso, O=Contoso Ltd, C=US"
~~~`,
		docLinks: []HttpLink{packageIdentityDocs},
	}

	invalidPackageFamilyNameIssue = &Issue{
		id: InvalidPackageFamilyNameId,
		mdMsg: `
# Invalid package family name!

A package family name has the form ` + "`<name>_<publisherid>`" + `.
Everything after the last underscore must be a valid publisher id.

## Things you can try:
- Make sure the value contains an underscore
- Check the publisher id part with:
~~~
$ pfname check <publisher-id>
~~~

- Compute the full name from its parts:
~~~
$ pfname new Contoso.App "CN=Contoso, O=Contoso Ltd, C=US"
~~~`,
		docLinks: []HttpLink{packageIdentityDocs},
	}

	underscoreInPackageNameIssue = &Issue{
		id: UnderscoreInPackageNameId,
		mdMsg: `
# Package name contains an underscore!

The package family name was built, but its text form will not parse
back to the same name: parsing splits at the last underscore, so part of
the name ends up in front of the publisher id.

## Things you can try:
- Use a dot or hyphen instead of the underscore in the package name
- Keep the name and publisher id as separate fields when storing them`,
	}

	packageFamilyNameMismatchIssue = &Issue{
		id: PackageFamilyNameMismatchId,
		mdMsg: `
# Package family names differ!

Both values are well formed but name different packages.
Comparison ignores ASCII letter case in both the name and the publisher id.

## Things you can try:
- Compare the publisher ids on their own:
~~~
$ pfname parse <package-family-name>
~~~

- Re-derive the publisher id from the certificate subject`,
	}

	batchFileNotFoundIssue = &Issue{
		id: BatchFileNotFoundId,
		mdMsg: `
# Batch file not found!

The batch file could not be opened.

## Things you can try:
- Check the path and file permissions
- Create a batch file like this one:
~~~cue
identities: [
	{name: "Contoso.App", publisher: "CN=Contoso, O=Contoso Ltd, C=US"},
	{name: "Fabrikam.Tool", publisher: "CN=Fabrikam"},
]
~~~`,
	}

	batchFileParseErrorIssue = &Issue{
		id: BatchFileParseErrorId,
		mdMsg: `
# Failed to parse batch file!

The batch file is not valid CUE or does not match the expected schema.

## Things you can try:
- Every entry needs a ` + "`name`" + ` and a ` + "`publisher`" + ` string
- Names may not be empty
- Unknown fields are rejected; check for typos in field names
- Validate the file with the CUE tool:
~~~
$ cue vet batch.cue
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or is invalid.

## Things you can try:
- Show where pfname looks for its configuration:
~~~
$ pfname config path
~~~

- Recreate the default configuration:
~~~
$ pfname config init --force
~~~

- Check PFNAME_* environment variables for invalid values`,
	}

	invalidOutputFormatIssue = &Issue{
		id: InvalidOutputFormatId,
		mdMsg: `
# Invalid output format!

Supported formats are ` + "`text`, `json`, `toml`, `yaml`" + ` and ` + "`cbor`" + `.

## Things you can try:
- Pass one of the supported formats:
~~~
$ pfname id --output json "CN=Contoso"
~~~

- Set a default in your configuration file:
~~~cue
output_format: "yaml"
~~~`,
	}

	issues = map[Id]*Issue{
		invalidPublisherIdIssue.Id():        invalidPublisherIdIssue,
		invalidPackageFamilyNameIssue.Id():  invalidPackageFamilyNameIssue,
		underscoreInPackageNameIssue.Id():   underscoreInPackageNameIssue,
		packageFamilyNameMismatchIssue.Id(): packageFamilyNameMismatchIssue,
		batchFileNotFoundIssue.Id():         batchFileNotFoundIssue,
		batchFileParseErrorIssue.Id():       batchFileParseErrorIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		invalidOutputFormatIssue.Id():       invalidOutputFormatIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
