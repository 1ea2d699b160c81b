package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/teamtrack/internal/config"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "teamtrack-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	stack, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if stack.pprofServer != nil {
		t.Fatalf("expected no pprof server when disabled")
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_UptraceWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "teamtrack-api", AppEnv: config.EnvDev}

	stack, err := Start(cfg, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStack_ShutdownNilIsSafe(t *testing.T) {
	var stack *Stack
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil shutdown: %v", err)
	}
}
