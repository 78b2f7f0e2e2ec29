package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-i", "-t", "-r", "-n", "-s", "-l", "-f"}

// parseFlags populates Config fields from command-line flags. Arguments it
// does not know about (such as -c) are filtered out first with
// flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the story API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.MaxSyncAttempts, "r", cfg.MaxSyncAttempts, "attempts before a rejected queued story is moved aside")
	fs.StringVar(&cfg.NotifyAddr, "n", cfg.NotifyAddr, "notification hub listen address")
	fs.StringVar(&cfg.NotifySubscribeURL, "s", cfg.NotifySubscribeURL, "peer notification hub URL")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	return nil
}
