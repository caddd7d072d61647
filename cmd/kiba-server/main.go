// Command kiba-server runs the kiba key-value server: a cobra root command
// taking zero or one positional config-file argument, following the same
// rootCmd/Execute shape as phenix's cmd/root.go in this corpus, generalized
// from phenix's viper-backed flags to kiba's own plain-text config file.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lukluk/kiba/internal/banner"
	"github.com/lukluk/kiba/internal/config"
	"github.com/lukluk/kiba/internal/logging"
	"github.com/lukluk/kiba/internal/metrics"
	"github.com/lukluk/kiba/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "kiba-server [config file]",
	Short: "kiba is a small in-memory key-value server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	logging.Init(config.ResolveLogLevel(cfg))

	if path != "" && !config.LooksLikeKibaConf(path) {
		logrus.Warnf("config file %q does not follow the conventional kiba.conf naming", path)
	}

	banner.Print(fmt.Sprintf("listening on %s", cfg.Bind))

	var metricsReg *metrics.Registry
	if cfg.MetricsBind != "" {
		metricsReg = metrics.New()
		go serveMetrics(cfg.MetricsBind, metricsReg)
	}

	coord := server.New(cfg, metricsReg)
	return coord.Run(context.Background())
}

func serveMetrics(bind string, reg *metrics.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	logrus.Infof("metrics listening on %s", bind)
	if err := http.ListenAndServe(bind, mux); err != nil {
		logrus.Errorf("metrics server stopped: %v", err)
	}
}
