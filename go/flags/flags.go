// Package flags parses command line arguments and environment variables into option structs.
package flags

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// Parse parses os.Args and env into opts and returns the positional arguments.
func Parse(opts any) ([]string, error) {
	return ParseArgs(opts, os.Args[1:])
}

// ParseArgs parses args, without the program name, into opts.
func ParseArgs(opts any, args []string) ([]string, error) {
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		if IsHelp(err) {
			return nil, err
		}
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	return rest, nil
}

// IsHelp reports whether err was caused by a help request.
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}
