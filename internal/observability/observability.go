package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/teamtrack/internal/config"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Stack is the set of telemetry exporters and profilers running next to the API.
type Stack struct {
	logger          *logging.Logger
	shutdownUptrace func(context.Context) error
	stopPyroscope   func() error
	pprofServer     *http.Server
}

// Start brings up uptrace, pyroscope and pprof as configured. Parts already started are
// stopped again when a later one fails.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{
		logger:          logger,
		shutdownUptrace: initUptrace(cfg, logger),
		stopPyroscope:   func() error { return nil },
	}

	stop, err := initPyroscope(cfg, logger)
	if err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	s.stopPyroscope = stop

	s.pprofServer = startPprofServer(cfg, logger)
	return s, nil
}

// Shutdown stops every part and reports all failures together.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.pprofServer != nil {
		if err := s.pprofServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			s.logger.Info("pprof server stopped")
		}
		s.pprofServer = nil
	}
	if err := s.stopPyroscope(); err != nil {
		errs = append(errs, err)
	}
	if err := s.shutdownUptrace(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func initUptrace(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noop
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noop
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "environment", cfg.AppEnv)
	return uptrace.Shutdown
}

func initPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return nil, err
	}
	logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return profiler.Stop, nil
}

func startPprofServer(cfg config.Config, logger *logging.Logger) *http.Server {
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof server starting", "addr", cfg.PprofAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return srv
}
