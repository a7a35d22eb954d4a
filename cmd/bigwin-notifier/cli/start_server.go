package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/observability/metrics"
	"github.com/highroll-gg/bigwin-notifier/internal/observability/tracing"
	"github.com/highroll-gg/bigwin-notifier/internal/server"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the big-win notifier trigger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	service, store, err := buildService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while wiring service")
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartCyclePoller(ctx)

	return server.New(&cfg.Server, service, store).Start()
}
