package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// parseEnv overlays values from the environment. Variable names follow the
// deployment conventions of the service (docker-compose / .env files).
//
// DATABASE_DSN wins over the DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD
// group; the group is only used when DB_HOST is set.
func parseEnv(config *Config) {
	if port, ok := os.LookupEnv("SERVER_PORT"); ok && port != "" {
		config.EndpointAddrHTTP = ":" + port
	}

	if host := os.Getenv("DB_HOST"); host != "" {
		config.DatabaseDSN = buildDSN(host)
	}
	lookupString("DATABASE_DSN", &config.DatabaseDSN)

	lookupString("SECRET", &config.SecretKey)
	lookupString("UPLOAD_DIR", &config.UploadDir)

	lookupString("AWS_ACCESS_KEY_ID", &config.S3AccessKey)
	lookupString("AWS_SECRET_ACCESS_KEY", &config.S3SecretKey)
	lookupString("S3_BUCKET_NAME", &config.S3Bucket)
	lookupString("AWS_REGION", &config.S3Region)
	lookupString("S3_ENDPOINT", &config.S3BaseEndpoint)

	lookupString("SMTP_HOST", &config.SMTPHost)
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.SMTPPort = port
		}
	}
	lookupString("EMAIL_USER", &config.EmailUser)
	lookupString("EMAIL_PASS", &config.EmailPass)

	lookupString("PUBLIC_BASE_URL", &config.PublicBaseURL)
	lookupString("STATIC_DIR", &config.StaticDir)
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func buildDSN(host string) string {
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	sslmode := "disable"
	if os.Getenv("APP_ENV") == "production" {
		sslmode = "require"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     "/" + os.Getenv("DB_NAME"),
		RawQuery: "sslmode=" + sslmode,
	}
	return u.String()
}
