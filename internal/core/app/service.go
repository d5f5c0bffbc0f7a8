package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"inscope/internal/core/errors"
	"inscope/internal/engine/symbols"
	"inscope/internal/shared/observability"
)

// AnalysisService is the traced entry surface the CLI and UI call into.
type AnalysisService struct {
	app *App
}

func NewAnalysisService(app *App) *AnalysisService {
	return &AnalysisService{app: app}
}

func (a *App) AnalysisService() *AnalysisService {
	return NewAnalysisService(a)
}

func (s *AnalysisService) Unwrap() *App {
	return s.app
}

func (s *AnalysisService) Close(ctx context.Context) error {
	if s == nil || s.app == nil {
		return nil
	}
	return s.app.Close()
}

type ScanResult struct {
	ScanID       string
	FilesScanned int
	Classes      int
	Warnings     []string
}

func (s *AnalysisService) RunScan(ctx context.Context) (ScanResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysisService.RunScan",
		trace.WithAttributes(attribute.String("scan.id", uuid.NewString())))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}
	if s.app == nil {
		return ScanResult{}, fmt.Errorf("app is required")
	}
	if s.app.Config == nil {
		return ScanResult{}, fmt.Errorf("config is required")
	}

	if err := s.app.InitialScan(); err != nil {
		return ScanResult{}, errors.AddContext(err, errors.CtxOperation, "initial_scan")
	}
	return ScanResult{
		ScanID:       uuid.NewString(),
		FilesScanned: s.app.FileCount(),
		Classes:      s.app.Table.ClassCount(),
	}, nil
}

func (s *AnalysisService) ResolveName(ctx context.Context, path, name string, kinds symbols.KindSet) ([]Resolution, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysisService.ResolveName",
		trace.WithAttributes(attribute.String("symbol", name)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.app == nil {
		return nil, fmt.Errorf("app is required")
	}
	results, err := s.app.ResolveName(path, name, kinds, -1)
	if err != nil {
		err = errors.AddContext(err, errors.CtxPath, path)
		err = errors.AddContext(err, errors.CtxSymbol, name)
		return nil, err
	}
	return results, nil
}

func (s *AnalysisService) UnusedImports(ctx context.Context) ([]UnusedImport, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysisService.UnusedImports")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.app == nil {
		return nil, fmt.Errorf("app is required")
	}
	return s.app.AnalyzeUnusedImports(), nil
}

func (s *AnalysisService) UnresolvedImports(ctx context.Context) ([]UnresolvedImport, error) {
	ctx, span := observability.Tracer.Start(ctx, "analysisService.UnresolvedImports")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.app == nil {
		return nil, fmt.Errorf("app is required")
	}
	return s.app.AnalyzeUnresolvedImports(), nil
}
