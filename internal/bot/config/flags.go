package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/flagx"
)

// parseFlags populates selected bot Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-t string   Telegram bot token
//	-e string   Telegram Bot API base URL
//	-n string   nodeos RPC endpoint
//	-d string   PostgreSQL DSN
//	-s string   unlock token HMAC secret key
//	-p int      getUpdates long-poll timeout, seconds
//	-u int      unlock token validity, minutes
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and then converted to
//     time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-t", "-e", "-n", "-d", "-s", "-p", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.TelegramToken, "t", config.TelegramToken, "telegram bot token")
	fs.StringVar(&config.TelegramEndpoint, "e", config.TelegramEndpoint, "telegram bot api base url")
	fs.StringVar(&config.NodeURL, "n", config.NodeURL, "nodeos rpc endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	pollTimeout := fs.Int("p", int(config.PollTimeout.Seconds()), "poll_timeout (in seconds)")
	unlockTokenTTL := fs.Int("u", int(config.UnlockTokenTTL.Minutes()), "unlock_token_ttl (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PollTimeout = time.Duration(*pollTimeout) * time.Second
	config.UnlockTokenTTL = time.Duration(*unlockTokenTTL) * time.Minute
}
