package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func mapEnv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(mapEnv(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppName != "My App" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	if cfg.AppSlogan != "Runs on Kubernetes" {
		t.Errorf("AppSlogan = %q", cfg.AppSlogan)
	}
	if cfg.BackgroundURL != "" {
		t.Errorf("BackgroundURL = %q, want empty", cfg.BackgroundURL)
	}
	if cfg.Port != 81 || cfg.Addr() != ":81" {
		t.Errorf("Port = %d, Addr = %q", cfg.Port, cfg.Addr())
	}
	if cfg.AWS.Region != "us-east-1" {
		t.Errorf("AWS.Region = %q", cfg.AWS.Region)
	}
	if cfg.MySQL.Host != "mysql" || cfg.MySQL.Database != "appdb" {
		t.Errorf("MySQL = %+v", cfg.MySQL)
	}
	if cfg.AWS.HasStaticCredentials() {
		t.Errorf("expected no static credentials")
	}
	if want := filepath.Join("static", "bg", "bg.jpg"); cfg.BackgroundFile() != want {
		t.Errorf("BackgroundFile() = %q, want %q", cfg.BackgroundFile(), want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	cfg, err := Load(mapEnv(map[string]string{
		"APP_NAME":              "Shop",
		"APP_SLOGAN":            "Open late",
		"BACKGROUND_IMAGE_URL":  "  s3://bucket/bg.jpg \n",
		"PORT":                  "8081",
		"AWS_ACCESS_KEY_ID":     "AKID",
		"AWS_SECRET_ACCESS_KEY": "secret",
		"AWS_DEFAULT_REGION":    "eu-west-1",
		"AWS_REGION":            "us-west-2",
		"STATIC_DIR":            "/srv/static",
	}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppName != "Shop" || cfg.AppSlogan != "Open late" {
		t.Errorf("unexpected name/slogan %q %q", cfg.AppName, cfg.AppSlogan)
	}
	if cfg.BackgroundURL != "s3://bucket/bg.jpg" {
		t.Errorf("BackgroundURL = %q, want trimmed value", cfg.BackgroundURL)
	}
	if cfg.Addr() != ":8081" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Errorf("AWS_DEFAULT_REGION should win, got %q", cfg.AWS.Region)
	}
	if !cfg.AWS.HasStaticCredentials() {
		t.Errorf("expected static credentials")
	}
	if cfg.BackgroundFile() != filepath.Join("/srv/static", "bg", "bg.jpg") {
		t.Errorf("BackgroundFile() = %q", cfg.BackgroundFile())
	}
}

func TestLoadRegionFallback(t *testing.T) {
	cfg, err := Load(mapEnv(map[string]string{"AWS_REGION": "ap-south-1"}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AWS.Region != "ap-south-1" {
		t.Errorf("AWS.Region = %q", cfg.AWS.Region)
	}
}

func TestHasStaticCredentialsNeedsBoth(t *testing.T) {
	a := AWS{AccessKeyID: "AKID"}
	if a.HasStaticCredentials() {
		t.Errorf("only access key set, want false")
	}
	a = AWS{SecretAccessKey: "secret"}
	if a.HasStaticCredentials() {
		t.Errorf("only secret set, want false")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000", "-1"} {
		_, err := Load(mapEnv(map[string]string{"PORT": port}))
		if !errors.Is(err, ErrInvalidPort) {
			t.Errorf("PORT=%q: error = %v, want ErrInvalidPort", port, err)
		}
	}
}
