package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"inscope/internal/engine/symbols"
)

func TestRunScan(t *testing.T) {
	a := fixtureApp(t)
	svc := a.AnalysisService()

	result, err := svc.RunScan(context.Background())
	if err != nil {
		t.Fatalf("run scan: %v", err)
	}
	if result.ScanID == "" {
		t.Error("expected a scan id")
	}
	if result.FilesScanned != 2 {
		t.Errorf("expected 2 files scanned, got %d", result.FilesScanned)
	}
	if result.Classes != a.Table.ClassCount() {
		t.Errorf("class count mismatch: %d vs %d", result.Classes, a.Table.ClassCount())
	}
}

func TestRunScan_CancelledContext(t *testing.T) {
	a := fixtureApp(t)
	svc := a.AnalysisService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.RunScan(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRunScan_RequiresApp(t *testing.T) {
	svc := NewAnalysisService(nil)
	if _, err := svc.RunScan(context.Background()); err == nil {
		t.Fatal("expected error for nil app")
	}
}

func TestServiceResolveName(t *testing.T) {
	a := fixtureApp(t)
	svc := a.AnalysisService()
	path := filepath.Join(a.Config.ProjectRoot, "src/com/app/Main.java")

	results, err := svc.ResolveName(context.Background(), path, "Constants", symbols.KindSet(0))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one resolution, got %d", len(results))
	}

	_, err = svc.ResolveName(context.Background(), "/nope/Missing.java", "Constants", symbols.KindSet(0))
	if err == nil {
		t.Fatal("expected error for unindexed file")
	}
	if !strings.Contains(err.Error(), "Missing.java") {
		t.Errorf("error should carry the path context: %v", err)
	}
}

func TestServiceDiagnostics(t *testing.T) {
	a := fixtureApp(t)
	svc := a.AnalysisService()

	unused, err := svc.UnusedImports(context.Background())
	if err != nil {
		t.Fatalf("unused: %v", err)
	}
	if len(unused) == 0 {
		t.Error("expected unused imports in fixture")
	}

	unresolved, err := svc.UnresolvedImports(context.Background())
	if err != nil {
		t.Fatalf("unresolved: %v", err)
	}
	if len(unresolved) == 0 {
		t.Error("expected unresolved imports in fixture")
	}
}

func TestServiceClose_NilSafe(t *testing.T) {
	var svc *AnalysisService
	if err := svc.Close(context.Background()); err != nil {
		t.Fatalf("nil service close: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	a := fixtureApp(t)
	health := NewHealthService(a)

	status := health.Check(context.Background())
	if status.Status != "up" {
		t.Errorf("expected up, got %q", status.Status)
	}
	if !strings.HasPrefix(status.Components["symbol_table"], "ok") {
		t.Errorf("unexpected symbol_table component: %q", status.Components["symbol_table"])
	}
	if status.Components["parser"] != "ok" {
		t.Errorf("unexpected parser component: %q", status.Components["parser"])
	}

	// DB enabled in config but no store open reports degraded.
	a.Config.DB.Enabled = true
	status = health.Check(context.Background())
	if status.Status != "degraded" {
		t.Errorf("expected degraded, got %q", status.Status)
	}
	if status.Components["symbol_store"] != "missing but enabled in config" {
		t.Errorf("unexpected symbol_store component: %q", status.Components["symbol_store"])
	}
}
