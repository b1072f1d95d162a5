// Command precalculate-text measures every character of a DejaVu Sans TTF and
// writes the metrics table used by the precalculated text measurer.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/pretty"

	"github.com/malonaz/badges/go/badges/measure"
	"github.com/malonaz/badges/go/flags"
	"github.com/malonaz/badges/go/logging"
)

var opts struct {
	Logging *logging.Opts `group:"Logging" namespace:"logging" env-namespace:"LOGGING"`

	FontPath  string   `long:"deja-vu-sans-path" description:"The DejaVu Sans TTF to measure" required:"true"`
	Encodings []string `long:"kerning-pair-encodings" description:"Only include kerning pairs of characters encodable in one of these charsets" default:"cp1252"`
	Output    string   `long:"output" description:"Output file path. A .gz suffix compresses the table" default:"go/badges/textmetrics/resources/default-widths.json.gz"`
	Pretty    bool     `long:"pretty" description:"Indent the JSON output"`
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

	charmaps, err := lookupCharmaps(opts.Encodings)
	if err != nil {
		return err
	}
	font, err := measure.NewFontFromFile(opts.FontPath)
	if err != nil {
		return err
	}

	characters := supportedCharacters(font)
	kerningCharacters := encodableCharacters(characters, charmaps)
	slog.InfoContext(ctx, "measuring", "characters", len(characters), "kerning_characters", len(kerningCharacters))
	table, err := buildTable(font, characters, kerningCharacters)
	if err != nil {
		return err
	}

	buffer := &bytes.Buffer{}
	if err := table.Write(buffer); err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}
	encoded := buffer.Bytes()
	if opts.Pretty {
		encoded = pretty.PrettyOptions(encoded, &pretty.Options{Width: 80, Indent: " ", SortKeys: true})
	}
	if err := writeOutput(opts.Output, encoded); err != nil {
		return err
	}
	slog.InfoContext(ctx, "wrote metrics table", "path", opts.Output, "bytes", len(encoded))
	return nil
}

func writeOutput(path string, encoded []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	var writer io.WriteCloser = nopCloser{file}
	if strings.HasSuffix(path, ".gz") {
		writer, err = gzip.NewWriterLevel(file, gzip.BestCompression)
		if err != nil {
			return err
		}
	}
	if _, err := writer.Write(encoded); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
