package cli

import (
	"fmt"

	coreapp "inscope/internal/core/app"
	"inscope/internal/core/config"
)

type analysisFactory interface {
	New(cfg *config.Config) (*coreapp.AnalysisService, error)
}

type coreAnalysisFactory struct{}

func (coreAnalysisFactory) New(cfg *config.Config) (*coreapp.AnalysisService, error) {
	app, err := coreapp.New(cfg)
	if err != nil {
		return nil, err
	}
	return app.AnalysisService(), nil
}

func initializeAnalysis(cfg *config.Config, factory analysisFactory) (*coreapp.AnalysisService, error) {
	if factory == nil {
		return nil, fmt.Errorf("analysis factory is required")
	}
	return factory.New(cfg)
}
