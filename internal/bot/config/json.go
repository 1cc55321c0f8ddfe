package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/eosbot/internal/flagx"
	"github.com/dmitrijs2005/eosbot/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	TelegramToken    string         `json:"telegram_token"`
	TelegramEndpoint string         `json:"telegram_endpoint"`
	PollTimeout      timex.Duration `json:"poll_timeout"`
	NodeURL          string         `json:"node_url"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	UnlockTokenTTL   timex.Duration `json:"unlock_token_ttl"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file cannot be read or contains invalid JSON, the function panics.
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.TelegramToken = c.TelegramToken
	config.TelegramEndpoint = c.TelegramEndpoint
	config.PollTimeout = time.Duration(c.PollTimeout.Duration)
	config.NodeURL = c.NodeURL
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.UnlockTokenTTL = time.Duration(c.UnlockTokenTTL.Duration)
}
