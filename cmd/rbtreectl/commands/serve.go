package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/redblack-systems/rbtree/pkg/arena"
	"github.com/redblack-systems/rbtree/pkg/config"
	"github.com/redblack-systems/rbtree/pkg/metrics"
	"github.com/redblack-systems/rbtree/pkg/observability"
)

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewServeCommand starts a long-running synthetic workload against a
// sharded arena while exposing its Prometheus metrics over HTTP.
func NewServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a synthetic workload while exposing Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.Mode = observability.ModeServe
	obsCfg.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Tracing.OTLPInsecure
	obsCfg.SampleRatio = cfg.Tracing.SampleRatio
	obsCfg.LogLevel = logLevelFromString(cfg.Logging.Level)
	obsCfg.LogJSON = cfg.Logging.Format == "json"

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	registry := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(registry)

	shards := arena.NewShardedAllocator(cfg.Arena.ShardCount, cfg.Arena.HibernationThreshold)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runSyntheticWorkload(ctx, shards, collectors, providers)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port)
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serverErr := make(chan error, 1)

	go func() {
		providers.Logger.Info("serving metrics", "addr", addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Tracing.ShutdownWait)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return providers.Shutdown(shutdownCtx)
}

// runSyntheticWorkload continuously inserts and erases keys in the single
// shard the "workload" key space routes to, feeding the insert/erase
// counters the /metrics endpoint serves.
func runSyntheticWorkload(
	ctx context.Context,
	shards *arena.ShardedAllocator,
	collectors *metrics.Collectors,
	providers observability.Providers,
) {
	const (
		keySpace = "workload"
		universe = 1 << 16
	)

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // synthetic load generator, not a security context.

	shard := shards.Shard(keySpace)
	tree := arena.NewTree(shard)
	present := map[uint32]bool{}

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			key := uint32(rng.Intn(universe)) //nolint:gosec // bounded by universe.

			if present[key] {
				_, walkDepth, rotations := tree.DeleteWithKey(key)
				delete(present, key)
				collectors.ObserveErase(walkDepth, rotations)
			} else {
				_, _, walkDepth, rotations := tree.Insert(arena.Item{Key: key, Value: key})
				present[key] = true
				collectors.ObserveInsert(walkDepth, rotations)
			}

			if len(present)%1000 == 0 {
				providers.Logger.Debug("workload tick", "live_keys", len(present))
			}
		}
	}
}
