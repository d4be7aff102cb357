package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNKeepsExplicitValue(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://app:secret@db:5432/vastra"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://app:secret@db:5432/vastra" {
		t.Fatalf("dsn was rewritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNAssemblesFromLegacyParts(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "localhost",
		LegacyPort:     5432,
		LegacyUser:     "vastra",
		LegacyPassword: "pw",
		LegacyName:     "vastra_dev",
		LegacySSLMode:  "disable",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(cfg.DSN, "postgres://vastra:pw@localhost:5432/vastra_dev") {
		t.Fatalf("unexpected dsn %s", cfg.DSN)
	}
	if !strings.Contains(cfg.DSN, "sslmode=disable") {
		t.Fatalf("expected sslmode in dsn, got %s", cfg.DSN)
	}
}

func TestEnsureDSNReportsMissingParts(t *testing.T) {
	cfg := DBConfig{LegacyHost: "localhost"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing legacy values")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars, got %v", err)
	}
}

func TestAppConfigEnvChecks(t *testing.T) {
	if !(AppConfig{Env: "Dev"}).IsDev() {
		t.Fatal("expected case-insensitive dev check")
	}
	if !(AppConfig{Env: "PROD"}).IsProd() {
		t.Fatal("expected case-insensitive prod check")
	}
	if (AppConfig{Env: "dev"}).IsProd() {
		t.Fatal("dev must not be prod")
	}
}

func TestRefreshTokenTTL(t *testing.T) {
	cfg := JWTConfig{RefreshTokenTTLMinutes: 60}
	if cfg.RefreshTokenTTL().Minutes() != 60 {
		t.Fatalf("unexpected ttl %v", cfg.RefreshTokenTTL())
	}
	if (JWTConfig{}).RefreshTokenTTL() != 0 {
		t.Fatal("expected zero ttl when unset")
	}
}
