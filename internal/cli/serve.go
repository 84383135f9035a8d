package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-times/internal/server"
)

var flagAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve prayer times over HTTP",
		Long: "Run a JSON HTTP API exposing /v1/timings, /v1/calendar, /v1/moon, /v1/qibla\n" +
			"and /v1/methods. Requests without a method use the configured one.",
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	tz, err := resolveTimezone(cfg.Timezone, "")
	if err != nil {
		return err
	}

	if FlagLogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	params := cfg.Resolve()
	router := server.NewRouter(server.Options{
		Defaults: params,
		Location: tz,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("timezone", tz.String()).Str("method", params.Method.String()).Msg("request defaults")
	return server.Run(ctx, flagAddr, router)
}
