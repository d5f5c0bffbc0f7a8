package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if s.app.Table == nil {
		status.Status = "degraded"
		status.Components["symbol_table"] = "missing"
	} else {
		status.Components["symbol_table"] = fmt.Sprintf("ok (%d files, %d classes)", s.app.FileCount(), s.app.Table.ClassCount())
	}

	if s.app.store != nil {
		status.Components["symbol_store"] = "ok"
	} else if s.app.Config.DB.Enabled {
		status.Status = "degraded"
		status.Components["symbol_store"] = "missing but enabled in config"
	}

	if s.app.Parser != nil {
		status.Components["parser"] = "ok"
	} else {
		status.Status = "degraded"
		status.Components["parser"] = "missing"
	}

	return status
}
