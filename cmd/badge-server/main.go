// Command badge-server serves badges over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/malonaz/badges/go/badges"
	"github.com/malonaz/badges/go/badges/datauri"
	"github.com/malonaz/badges/go/badges/measure"
	"github.com/malonaz/badges/go/badges/textmetrics"
	"github.com/malonaz/badges/go/flags"
	bhttp "github.com/malonaz/badges/go/http"
	"github.com/malonaz/badges/go/logging"
	"github.com/malonaz/badges/go/prometheus"
)

var opts struct {
	Logging    *logging.Opts    `group:"Logging" namespace:"logging" env-namespace:"LOGGING"`
	Measure    *measure.Opts    `group:"Measure" namespace:"measure" env-namespace:"MEASURE"`
	HTTP       *bhttp.Opts      `group:"HTTP" namespace:"http" env-namespace:"HTTP"`
	Prometheus *prometheus.Opts `group:"Prometheus" namespace:"prometheus" env-namespace:"PROMETHEUS"`

	AllowLocalImages bool          `long:"allow-local-images" env:"ALLOW_LOCAL_IMAGES" description:"Allow embedding images read from the server's filesystem"`
	FetchTimeout     time.Duration `long:"fetch-timeout" env:"FETCH_TIMEOUT" description:"Timeout of remote image fetches" default:"10s"`
	MaxImageBytes    int64         `long:"max-image-bytes" env:"MAX_IMAGE_BYTES" description:"Largest remote image body to embed" default:"1048576"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "running", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if _, err := flags.Parse(&opts); err != nil {
		if flags.IsHelp(err) {
			fmt.Fprintln(os.Stdout, err)
			return nil
		}
		return err
	}
	if err := logging.Init(opts.Logging, bhttp.LogAttrs); err != nil {
		return err
	}

	measurer, err := measure.New(opts.Measure)
	if err != nil {
		return fmt.Errorf("creating measurer: %w", err)
	}
	resolver := datauri.NewResolver().
		WithHTTPClient(&http.Client{Timeout: opts.FetchTimeout}).
		WithLocalFiles(opts.AllowLocalImages).
		WithMaxBytes(opts.MaxImageBytes)
	routes := newHandler(badges.NewComposer(measurer, resolver))

	server := bhttp.NewServer(opts.HTTP, func(context.Context) error {
		_, err := textmetrics.Default()
		return err
	})
	for pattern, route := range map[string]http.Handler{
		"GET /badge": http.HandlerFunc(routes.badge),
		"GET /{$}":   http.HandlerFunc(routes.examples),
	} {
		if err := server.RegisterRoute(pattern, route); err != nil {
			return err
		}
	}

	metricsServer := prometheus.NewServer(opts.Prometheus)
	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			slog.WarnContext(ctx, "serving metrics", "error", err)
		}
	}()
	defer metricsServer.Stop(context.Background())

	errs := make(chan error, 1)
	go func() { errs <- server.Serve(ctx) }()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		if err := server.GracefulStop(); err != nil {
			return fmt.Errorf("stopping server: %w", err)
		}
		return <-errs
	}
}
