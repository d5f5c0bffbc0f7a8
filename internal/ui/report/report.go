package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"inscope/internal/core/app"
)

// Diagnostics is the serializable shape of one analysis pass.
type Diagnostics struct {
	Unresolved []app.UnresolvedImport `json:"unresolved"`
	Unused     []app.UnusedImport     `json:"unused"`
	FileCount  int                    `json:"file_count"`
	ClassCount int                    `json:"class_count"`
}

func RenderDiagnosticsTSV(d Diagnostics) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("Type\tFile\tReference\tKind\tAlias\tConfidence\n")
	for _, row := range d.Unresolved {
		buf.WriteString(fmt.Sprintf("unresolved_import\t%s\t%s\t%s\t\t\n",
			row.File,
			row.Reference,
			row.Kind,
		))
	}
	for _, row := range d.Unused {
		buf.WriteString(fmt.Sprintf("unused_import\t%s\t%s\t%s\t%s\t%s\n",
			row.File,
			row.Reference,
			row.Kind,
			row.Alias,
			row.Confidence,
		))
	}

	return []byte(buf.String()), nil
}

func RenderDiagnosticsJSON(d Diagnostics) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
