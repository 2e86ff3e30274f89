package storage

import (
	"context"
	"testing"

	"github.com/stelofinance/homepage/internal/config"
)

func TestNewClientStaticCredentials(t *testing.T) {
	client, err := NewClient(context.Background(), config.AWS{
		AccessKeyID:     "AKID",
		SecretAccessKey: "secret",
		Region:          "eu-central-1",
		Endpoint:        "http://localhost:9000",
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	opts := client.Options()
	if opts.Region != "eu-central-1" {
		t.Errorf("Region = %q", opts.Region)
	}
	if !opts.UsePathStyle {
		t.Errorf("expected path style addressing with a custom endpoint")
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %v", opts.BaseEndpoint)
	}

	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "secret" {
		t.Errorf("unexpected credentials %+v", creds)
	}
}

func TestNewClientDefaultChain(t *testing.T) {
	client, err := NewClient(context.Background(), config.AWS{Region: "us-east-1"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	opts := client.Options()
	if opts.UsePathStyle {
		t.Errorf("path style should stay off without an endpoint")
	}
	if opts.BaseEndpoint != nil {
		t.Errorf("BaseEndpoint = %q, want nil", *opts.BaseEndpoint)
	}
}
