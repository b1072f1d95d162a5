// Command badge writes a badge SVG to stdout or opens it in a browser.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/malonaz/badges/go/badges"
	"github.com/malonaz/badges/go/badges/datauri"
	"github.com/malonaz/badges/go/badges/measure"
	"github.com/malonaz/badges/go/flags"
	"github.com/malonaz/badges/go/logging"
)

var opts struct {
	Logging *logging.Opts `group:"Logging" namespace:"logging" env-namespace:"LOGGING"`
	Measure *measure.Opts `group:"Measure" namespace:"measure" env-namespace:"MEASURE"`
	Badge   *badgeOpts    `group:"Badge"`

	Browser bool `long:"browser" description:"Write the badge to a temporary file and open it in a browser"`
}

func main() {
	ctx := context.Background()
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
	if err := logging.Init(opts.Logging, nil); err != nil {
		return err
	}

	spec, err := opts.Badge.spec()
	if err != nil {
		return err
	}
	measurer, err := measure.New(opts.Measure)
	if err != nil {
		return fmt.Errorf("creating measurer: %w", err)
	}
	composer := badges.NewComposer(measurer, datauri.NewResolver())
	document, err := composer.Compose(ctx, spec)
	if err != nil {
		return fmt.Errorf("composing badge: %w", err)
	}

	if !opts.Browser {
		_, err := os.Stdout.Write(document)
		return err
	}
	return openInBrowser(ctx, document)
}

func openInBrowser(ctx context.Context, document []byte) error {
	file, err := os.CreateTemp("", "badge-*.svg")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	if _, err := file.Write(document); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", file.Name(), err)
	}

	var command *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		command = exec.CommandContext(ctx, "open", file.Name())
	case "windows":
		command = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", file.Name())
	default:
		command = exec.CommandContext(ctx, "xdg-open", file.Name())
	}
	slog.DebugContext(ctx, "opening badge", "path", file.Name(), "command", command.Path)
	if err := command.Run(); err != nil {
		return fmt.Errorf("opening %s: %w", file.Name(), err)
	}
	return nil
}
