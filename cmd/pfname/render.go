// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pfname/pfname/internal/config"
	"github.com/pfname/pfname/pkg/codec"
	"github.com/pfname/pfname/pkg/identity"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type (
	// textRenderer is implemented by documents with a human-readable form.
	textRenderer interface {
		renderText(w io.Writer) error
	}

	// identityRecord is the output document for a single identity. Fields a
	// command did not compute are left empty and omitted. Publisher is set
	// whenever the id was derived, even from the empty string.
	identityRecord struct {
		Name              string                      `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
		Publisher         *string                     `json:"publisher,omitempty" toml:"publisher,omitempty" yaml:"publisher,omitempty"`
		PublisherID       identity.PublisherID        `json:"publisher_id" toml:"publisher_id" yaml:"publisher_id"`
		PackageFamilyName *identity.PackageFamilyName `json:"package_family_name,omitempty" toml:"package_family_name,omitempty" yaml:"package_family_name,omitempty"`
	}

	// recordSet is the output document for batch results.
	recordSet struct {
		Identities []identityRecord `json:"identities" toml:"identities" yaml:"identities"`
	}

	// comparison is the output document of the compare command.
	comparison struct {
		Left    identity.PackageFamilyName `json:"left" toml:"left" yaml:"left"`
		Right   identity.PackageFamilyName `json:"right" toml:"right" yaml:"right"`
		Equal   bool                       `json:"equal" toml:"equal" yaml:"equal"`
		Compare int                        `json:"compare" toml:"compare" yaml:"compare"`
	}
)

// newFamilyRecord builds the full record for a Package Family Name.
func newFamilyRecord(publisher string, pfn identity.PackageFamilyName) identityRecord {
	return identityRecord{
		Name:              pfn.Name(),
		Publisher:         &publisher,
		PublisherID:       pfn.PublisherID(),
		PackageFamilyName: &pfn,
	}
}

// writeDocument renders doc to w in the requested format.
func writeDocument(w io.Writer, format config.OutputFormat, doc textRenderer) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case config.OutputFormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case config.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputFormatCBOR:
		return codec.NewEncoder(w).Encode(doc)
	case config.OutputFormatText:
		return doc.renderText(w)
	default:
		return format.Validate()
	}
}

// writeField prints one aligned key/value line.
func writeField(w io.Writer, key, value string) error {
	_, err := fmt.Fprintf(w, "%s %s\n", fieldKeyStyle.Render(key+":"), SuccessStyle.Render(value))
	return err
}

func (r identityRecord) renderText(w io.Writer) error {
	fields := [][2]string{{"name", r.Name}}
	if r.Publisher != nil {
		fields = append(fields, [2]string{"publisher", strconv.Quote(*r.Publisher)})
	}
	fields = append(fields, [2]string{"publisher_id", r.PublisherID.String()})
	if r.PackageFamilyName != nil {
		fields = append(fields, [2]string{"package_family_name", r.PackageFamilyName.String()})
	}

	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := writeField(w, f[0], f[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s recordSet) renderText(w io.Writer) error {
	if len(s.Identities) == 0 {
		_, err := fmt.Fprintln(w, SubtitleStyle.Render("(no identities)"))
		return err
	}

	for _, r := range s.Identities {
		if _, err := fmt.Fprintf(w, "%s  %s\n",
			SuccessStyle.Render(r.PackageFamilyName.String()),
			SubtitleStyle.Render(strconv.Quote(*r.Publisher)),
		); err != nil {
			return err
		}
	}
	return nil
}

func (c comparison) renderText(w io.Writer) error {
	verdict := SuccessStyle.Render("equal")
	if !c.Equal {
		relation := "<"
		if c.Compare > 0 {
			relation = ">"
		}
		verdict = ErrorStyle.Render("different") + SubtitleStyle.Render(" (left "+relation+" right)")
	}

	if err := writeField(w, "left", c.Left.String()); err != nil {
		return err
	}
	if err := writeField(w, "right", c.Right.String()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", fieldKeyStyle.Render("result:"), verdict)
	return err
}
