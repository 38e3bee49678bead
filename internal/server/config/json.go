package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
	"github.com/dmitrijs2005/fileshare/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration, so both "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	UploadDir             string         `json:"upload_dir"`
	MaxUploadSize         int64          `json:"max_upload_size"`
	S3AccessKey           string         `json:"s3_access_key"`
	S3SecretKey           string         `json:"s3_secret_key"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	SMTPHost              string         `json:"smtp_host"`
	SMTPPort              int            `json:"smtp_port"`
	EmailUser             string         `json:"email_user"`
	EmailPass             string         `json:"email_pass"`
	PublicBaseURL         string         `json:"public_base_url"`
	StaticDir             string         `json:"static_dir"`
}

// parseJson loads configuration values from the JSON file named by -c,
// -config or the CONFIG environment variable. Keys missing from the file
// leave the current value untouched. An unreadable file or invalid JSON
// panics: the server must not start on a half-applied config.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	setString(&config.UploadDir, c.UploadDir)
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort > 0 {
		config.SMTPPort = c.SMTPPort
	}
	setString(&config.EmailUser, c.EmailUser)
	setString(&config.EmailPass, c.EmailPass)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.StaticDir, c.StaticDir)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
