package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
	"github.com/dmitrijs2005/fileshare/internal/timex"
)

// JsonConfig is the on-disk shape. Durations accept "30s" or nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config (or CONFIG).
// Zero values in the file leave cfg untouched. Read or decode errors panic.
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
