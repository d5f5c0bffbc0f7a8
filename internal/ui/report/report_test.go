package report

import (
	"encoding/json"
	"strings"
	"testing"

	"inscope/internal/core/app"
	"inscope/internal/engine/scope"
)

func sampleDiagnostics() Diagnostics {
	return Diagnostics{
		Unresolved: []app.UnresolvedImport{
			{File: "src/Main.java", Reference: "com.acme.Unknown", Kind: scope.ClassSingle},
		},
		Unused: []app.UnusedImport{
			{File: "src/Main.java", Reference: "com.acme.Extra", Alias: "Ex", Kind: scope.ClassSingle, Confidence: "high"},
			{File: "src/Other.java", Reference: "com.acme.util", Kind: scope.ClassOnDemand, Confidence: "low"},
		},
		FileCount:  2,
		ClassCount: 5,
	}
}

func TestRenderDiagnosticsTSV(t *testing.T) {
	out, err := RenderDiagnosticsTSV(sampleDiagnostics())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Type\tFile\tReference\tKind\tAlias\tConfidence" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "unresolved_import\tsrc/Main.java\tcom.acme.Unknown\tclass") {
		t.Errorf("unexpected unresolved row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "\tEx\thigh") {
		t.Errorf("alias and confidence missing from row: %q", lines[2])
	}
}

func TestRenderDiagnosticsJSON(t *testing.T) {
	out, err := RenderDiagnosticsJSON(sampleDiagnostics())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["file_count"].(float64) != 2 {
		t.Errorf("unexpected file_count: %v", decoded["file_count"])
	}
	unused, ok := decoded["unused"].([]any)
	if !ok || len(unused) != 2 {
		t.Fatalf("unexpected unused payload: %v", decoded["unused"])
	}
	first := unused[0].(map[string]any)
	if first["Kind"] != "class" {
		t.Errorf("kind should render as its name, got %v", first["Kind"])
	}
}
