package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TAX_RATE", "")
	t.Setenv("EVENTS_DRIVER", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.EventsDriver != EventsNone {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.TaxRate.String() != "0.08" {
		t.Fatalf("expected default tax rate 0.08, got %s", cfg.TaxRate)
	}
	if cfg.CheckoutTimeout != 15*time.Second {
		t.Fatalf("expected 15s checkout timeout, got %s", cfg.CheckoutTimeout)
	}
}

func TestFromEnvFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teapos.yaml")
	body := `
http_addr: ":9000"
store:
  name: Corner Tea
  tax_rate: "0.08875"
  checkout_timeout: 30s
redis:
  addr: redis:6379
events:
  driver: kafka
  kafka_brokers: [k1:9092, k2:9092]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("TAX_RATE", "")
	t.Setenv("EVENTS_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.HTTPAddr != ":9100" {
		t.Fatalf("env must win over file, got %s", cfg.HTTPAddr)
	}
	if cfg.StoreName != "Corner Tea" || cfg.RedisAddr != "redis:6379" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.TaxRate.String() != "0.08875" || cfg.CheckoutTimeout != 30*time.Second {
		t.Fatalf("unexpected store settings %s %s", cfg.TaxRate, cfg.CheckoutTimeout)
	}
	if cfg.EventsDriver != EventsKafka || len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("unexpected events settings %+v", cfg)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TAX_RATE", "1.5")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for tax rate >= 1")
	}

	t.Setenv("TAX_RATE", "")
	t.Setenv("EVENTS_DRIVER", "carrier-pigeon")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for unknown events driver")
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " http://a , ,http://b")
	got := envList("CORS_ORIGINS", nil)
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestFromEnvDBPool(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teapos.yaml")
	body := `
db_pool:
  max_conns: 20
  min_conns: 2
  max_conn_idle: 2m
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TAX_RATE", "")
	t.Setenv("EVENTS_DRIVER", "")
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MIN_CONNS", "")
	t.Setenv("DB_MAX_CONN_IDLE_SECONDS", "")
	t.Setenv("DB_MAX_CONN_LIFETIME_SECONDS", "600")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	pool := cfg.DBPool()
	if pool.MaxConns != 8 || pool.MinConns != 2 {
		t.Fatalf("unexpected pool sizes %+v", pool)
	}
	if pool.MaxConnIdleTime != 2*time.Minute || pool.MaxConnLifetime != 10*time.Minute {
		t.Fatalf("unexpected pool limits %+v", pool)
	}

	t.Setenv("DB_MAX_CONNS", "-1")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for a negative pool size")
	}
}
