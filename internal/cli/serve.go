package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"kiricut/internal/config"
	"kiricut/internal/logging"
	"kiricut/internal/monitoring"
	"kiricut/internal/pipeline"
	"kiricut/internal/server"
	"kiricut/internal/webui"
)

func newServeCmd(logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the dashboard and HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, logger)
		},
	}

	cmd.Flags().String("port", config.GetEnv("PORT", "8080"), "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, logger logging.Logger) error {
	cfg := pipelineConfig(cmd, "", logger)
	if err := cfg.ValidateBase(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	uc, st, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	if err := st.EnsureDir(); err != nil {
		return err
	}

	healthChecker := monitoring.NewHealthChecker(serviceName, version)
	healthChecker.AddCheck("data_dir", monitoring.DataDirHealthCheck(st.Dir()))
	healthChecker.AddCheck("yt_dlp", monitoring.BinaryHealthCheck("yt-dlp", cfg.YTDLPBin))

	metricsCollector := monitoring.NewMetricsCollector(serviceName, version)

	router := server.SetupServiceRouter(logger, healthChecker, metricsCollector)
	server.NewHandlers(uc, st, cfg.Params, metricsCollector, logger).Register(router)

	// Everything that is not an API route falls through to the dashboard.
	router.NoRoute(gin.WrapH(webui.Handler()))

	port, _ := cmd.Flags().GetString("port")
	srvCfg := server.DefaultConfig(serviceName, port)
	srvCfg.Port = port

	logger.WithFields(logging.Fields{
		"port":     port,
		"data_dir": st.Dir(),
		"version":  version,
	}).Info("Starting server")

	return server.Start(srvCfg, router, logger)
}
