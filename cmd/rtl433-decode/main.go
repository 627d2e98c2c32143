package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eshaz/rtl433/internal/config"
	"github.com/eshaz/rtl433/internal/metrics"
	"github.com/eshaz/rtl433/internal/options"
	"github.com/eshaz/rtl433/internal/output"
	"github.com/eshaz/rtl433/pkg/rtl433"
)

type flags struct {
	configPath  string
	devices     string
	format      string
	logLevel    string
	metricsAddr string
}

type app struct {
	log     *logrus.Logger
	cfg     config.Config
	writer  output.Writer
	metrics *metrics.Metrics
	server  *http.Server
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{log: logrus.New()})
}

func newRootCmdFor(a *app) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "rtl433-decode [rows]",
		Short: "Decode car remote bit rows",
		Long: "rtl433-decode runs the registered car remote decoders over demodulated bit rows " +
			"written as {N}hex, with several rows separated by '/'.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, f)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Metrics.Enabled {
				a.serveMetrics(a.cfg.Metrics.Address)
			}
			defer a.shutdown()
			if len(args) == 0 {
				return a.runInteractive(cmd.Context(), cmd.InOrStdin())
			}
			return a.decode(cmd.Context(), args[0])
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&f.devices, "devices", "", "comma separated device names to enable (default all)")
	root.PersistentFlags().StringVar(&f.format, "format", "", "output format: json or log")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	root.AddCommand(newDevicesCmd())
	return root
}

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List registered decoders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rtl433.ListDevices())
		},
	}
}

func (a *app) setup(cmd *cobra.Command, f flags) error {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if f.devices != "" {
		cfg.Devices = strings.Split(f.devices, ",")
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Address = f.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := options.ParseDeviceList(strings.Join(cfg.Devices, ",")); err != nil {
		return err
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	if err := cfg.ApplyLogging(a.log); err != nil {
		return err
	}
	writer, err := output.New(cfg.Output.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.writer = writer
	a.metrics = metrics.New(prometheus.NewRegistry())
	return nil
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	a.server = &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("metrics server stopped")
		}
	}()
	a.log.WithField("addr", addr).Info("serving metrics")
}

func (a *app) shutdown() {
	if a.server != nil {
		_ = a.server.Close()
	}
}

func (a *app) runInteractive(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	if in == os.Stdin {
		a.log.Info("rtl433-decode interactive mode. Paste bit rows and press Enter (Ctrl+D to exit).")
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := a.decode(ctx, line); err != nil {
			a.log.WithError(err).Error("failed to decode rows")
		}
	}
	return scanner.Err()
}

func (a *app) decode(ctx context.Context, rows string) error {
	opts := rtl433.DecodeOptions{
		Devices:  strings.Join(a.cfg.Devices, ","),
		Observer: a.metrics.Observe,
	}
	result, err := rtl433.DecodeRowsWithOptions(ctx, rows, opts)
	if err != nil {
		return err
	}
	entry := a.log.WithFields(logrus.Fields{"rows": result.Rows, "bits": result.BitCount})
	if !result.Accepted() {
		entry.WithField("status", result.Status).Debug("no decoder accepted rows")
		return nil
	}
	entry.WithField("device", result.Device).Debug("decoded")
	if err := a.writer.Write(result.Device, result.Record); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
