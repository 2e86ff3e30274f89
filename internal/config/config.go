package config

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrInvalidPort = errors.New("config: PORT must be a number between 1 and 65535")

type Config struct {
	AppName       string
	AppSlogan     string
	BackgroundURL string

	// Directory the background image is cached under, as bg/bg.jpg
	StaticDir string
	Port      int
	Env       string

	MySQL MySQL
	AWS   AWS
}

// MySQL holds the database settings. They are read so deployments can
// already provide them, nothing connects with them yet.
type MySQL struct {
	Host     string
	Database string
	User     string
	Password string
}

type AWS struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	// Optional endpoint for S3-compatible stores (MinIO, LocalStack, ...)
	Endpoint string
}

// HasStaticCredentials reports whether both keys were provided. When it is
// false the default credential chain is used instead.
func (a AWS) HasStaticCredentials() bool {
	return a.AccessKeyID != "" && a.SecretAccessKey != ""
}

// Load reads the configuration through getenv, applying defaults for
// anything that is unset.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		AppName:       withDefault(getenv("APP_NAME"), "My App"),
		AppSlogan:     withDefault(getenv("APP_SLOGAN"), "Runs on Kubernetes"),
		BackgroundURL: strings.TrimSpace(getenv("BACKGROUND_IMAGE_URL")),
		StaticDir:     withDefault(getenv("STATIC_DIR"), "static"),
		Env:           getenv("ENV"),
		MySQL: MySQL{
			Host:     withDefault(getenv("MYSQL_HOST"), "mysql"),
			Database: withDefault(getenv("MYSQL_DB"), "appdb"),
			User:     getenv("MYSQL_USER"),
			Password: getenv("MYSQL_PASSWORD"),
		},
		AWS: AWS{
			AccessKeyID:     getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY"),
			Region:          withDefault(getenv("AWS_DEFAULT_REGION"), withDefault(getenv("AWS_REGION"), "us-east-1")),
			Endpoint:        getenv("AWS_ENDPOINT_URL_S3"),
		},
	}

	port, err := strconv.Atoi(withDefault(getenv("PORT"), "81"))
	if err != nil || port < 1 || port > 65535 {
		return Config{}, ErrInvalidPort
	}
	cfg.Port = port

	return cfg, nil
}

// Addr is the listen address on all interfaces.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) BackgroundFile() string {
	return filepath.Join(c.StaticDir, "bg", "bg.jpg")
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
