package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/observability/tracing"
)

// RunCycleCmd runs a single poll cycle and prints its trace, for use from
// cron or any external scheduler instead of the long-running server.
func RunCycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-cycle",
		Short: "Runs one poll cycle and prints the cycle trace as JSON",
		Args:  cobra.ExactArgs(0),
		RunE:  runCycle,
	}

	return cmd
}

func runCycle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	service, _, err := buildService(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while wiring service")
	}

	result, runErr := service.RunCycle(ctx)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}

	return runErr
}
