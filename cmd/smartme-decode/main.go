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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/config"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/metrics"
	"github.com/lekkimworld/smartme-protobuf-parser/pkg/smartme"
)

func newRootCmd() *cobra.Command {
	var configPath, payloadFile string
	cmd := &cobra.Command{
		Use:   "smartme-decode [hex]",
		Short: "Decode smart-me protobuf telemetry payloads",
		Long:  "smartme-decode decodes smart-me device data payloads into OBIS classified samples.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, configPath, payloadFile)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file (default ./smartme.yaml if present)")
	flags.StringVar(&payloadFile, "file", "", "read a raw binary payload from file ('-' for stdin)")
	flags.String("schema", "", "FileDescriptorSet to decode with (default: embedded schema)")
	flags.Bool("adjust-epoch", false, "subtract the 0001-01-01 tick epoch before converting timestamps")
	flags.String("format", config.FormatJSON, "output format: json or yaml")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	flags.String("log-level", "info", "log level")
	return cmd
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx := context.Background()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

type app struct {
	cfg  *config.Config
	opts smartme.DecodeOptions
	out  io.Writer
}

func run(cmd *cobra.Command, args []string, configPath, payloadFile string) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logrus.SetLevel(cfg.LogLevel())

	a := &app{
		cfg: cfg,
		opts: smartme.DecodeOptions{
			SchemaPath:  cfg.Schema.Path,
			AdjustEpoch: cfg.Decode.AdjustEpoch,
		},
		out: cmd.OutOrStdout(),
	}
	if cfg.Metrics.Addr != "" {
		rec, err := serveMetrics(cfg.Metrics.Addr)
		if err != nil {
			return err
		}
		a.opts.Recorder = rec
	}

	ctx := cmd.Context()
	switch {
	case payloadFile != "":
		return a.runFile(ctx, payloadFile, cmd.InOrStdin())
	case len(args) == 1:
		return a.runHex(ctx, args[0])
	default:
		return a.runInteractive(ctx, cmd.InOrStdin())
	}
}

func serveMetrics(addr string) (metrics.Recorder, error) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewProm(reg)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("metrics server stopped")
		}
	}()
	logrus.WithField("addr", addr).Info("serving metrics")
	return rec, nil
}

func (a *app) runFile(ctx context.Context, path string, stdin io.Reader) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	samples, err := smartme.DecodeWithOptions(ctx, data, a.opts)
	if err != nil {
		return err
	}
	return a.print(samples)
}

func (a *app) runHex(ctx context.Context, hex string) error {
	samples, err := smartme.DecodeHexWithOptions(ctx, hex, a.opts)
	if err != nil {
		return err
	}
	return a.print(samples)
}

func (a *app) runInteractive(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	logrus.Info("smartme-decode interactive mode. Paste a hex payload and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := a.runHex(ctx, line); err != nil {
			logrus.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

func (a *app) print(samples []smartme.DeviceSample) error {
	logrus.WithField("samples", len(samples)).Debug("decoded payload")
	switch a.cfg.Output.Format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(samples); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(samples, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}
}
