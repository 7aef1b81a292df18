package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkurbatovs/shopcart/internal/flagx"
	"github.com/dkurbatovs/shopcart/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the TTL either as a string like "24h"
// or as integer nanoseconds.
type JsonConfig struct {
	StoreDSN    string         `json:"store_dsn"`
	LocalDBPath string         `json:"local_db_path"`
	TokenTTL    timex.Duration `json:"token_ttl"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. If no file is named, nothing happens. Read or unmarshal
// errors panic; the caller may recover if desired.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreDSN != "" {
		cfg.StoreDSN = jc.StoreDSN
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = time.Duration(jc.TokenTTL.Duration)
	}
}
