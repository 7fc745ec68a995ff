// Package config parses the small set of options cmd/server needs to
// boot: listen addresses, log verbosity and opt-in seeding. Kept as a
// flags struct (rather than viper/toml) because the surface is four knobs, all of
// which also make sense as env vars in a container — go-flags' struct
// tags cover both without extra wiring.
package config

import (
	"github.com/jessevdk/go-flags"
)

// Options are the bootstrap knobs for cmd/server.
type Options struct {
	HTTPAddr string `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"address for the REST API"`
	WSAddr   string `long:"ws-addr" env:"WS_ADDR" default:":8081" description:"address for the WebSocket broadcast transport"`
	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"zap log level: debug, info, warn, error"`
	Seed     bool   `long:"seed" env:"SEED" description:"seed the book with the sample BTC-USD style book from the demo scenario"`
}

// Parse reads Options from argv and the environment. args is typically
// os.Args[1:].
func Parse(args []string) (*Options, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &opts, nil
}
