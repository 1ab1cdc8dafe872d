package main

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/binschema/binschema/internal/config"
	"github.com/binschema/binschema/transport"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo binschema transport server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			policy, err := cfg.OverflowPolicyValue()
			if err != nil {
				return err
			}

			srv := transport.NewServer(cfg.MaxMessageSize, policy)
			srv.UseMetrics(transport.NewMetrics(prometheus.DefaultRegisterer))

			log.Info().
				Str("listen", cfg.ListenAddress).
				Str("max_message_size", humanize.Bytes(uint64(cfg.MaxMessageSize))).
				Msg("starting binschema demo server")

			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				log.Info().Str("metrics", cfg.MetricsAddress).Msg("serving Prometheus metrics")
				if err := http.ListenAndServe(cfg.MetricsAddress, mux); err != nil {
					log.Error().Err(err).Msg("metrics server stopped")
				}
			}()

			return srv.ListenAndServe(cfg.ListenNetwork, cfg.ListenAddress)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}
