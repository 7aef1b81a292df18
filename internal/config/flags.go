package config

import (
	"flag"
	"os"
	"time"

	"github.com/dkurbatovs/shopcart/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags listed
// here are parsed; anything else on the command line is ignored so other
// packages can define their own flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-dsn", "-l", "-local-db", "-token-ttl"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	dsn := fs.String("dsn", "", "Postgres DSN of the remote store")
	fs.StringVar(dsn, "d", "", "Postgres DSN of the remote store (short)")

	local := fs.String("local-db", "", "Path to the local SQLite database")
	fs.StringVar(local, "l", "", "Path to the local SQLite database (short)")

	ttl := fs.Duration("token-ttl", 0, "Session token validity period")

	_ = fs.Parse(args)

	if *dsn != "" {
		cfg.StoreDSN = *dsn
	}
	if *local != "" {
		cfg.LocalDBPath = *local
	}
	if *ttl != time.Duration(0) {
		cfg.TokenTTL = *ttl
	}
}
