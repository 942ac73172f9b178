package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"SERVICE_NAME", "HTTP_PORT", "POSTGRES_DSN", "BROKER_ADDRS",
		"REGISTRY_OWNER", "MINIMUM_STAKE", "TREASURY_ACCOUNT",
		"ENABLE_STAKE_WEIGHTED_PAYOUT", "ENABLE_RESOLUTION_AUDIT_CONSUMER",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.ServiceName != "tribunal" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected port %q", cfg.HTTPPort)
	}
	if len(cfg.BrokerAddrs) != 1 || cfg.BrokerAddrs[0] != "localhost:9092" {
		t.Fatalf("unexpected brokers %v", cfg.BrokerAddrs)
	}
	if cfg.RegistryOwner != "registry-owner" {
		t.Fatalf("unexpected registry owner %q", cfg.RegistryOwner)
	}
	if cfg.MinimumStake != 10 {
		t.Fatalf("unexpected minimum stake %d", cfg.MinimumStake)
	}
	if cfg.TreasuryAccount != "arbitration-treasury" {
		t.Fatalf("unexpected treasury account %q", cfg.TreasuryAccount)
	}
	if cfg.EnableStakeWeightedPayout {
		t.Fatalf("stake-weighted payout must default off")
	}
	if !cfg.EnableResolutionAuditConsumer {
		t.Fatalf("resolution audit consumer must default on")
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("SERVICE_NAME", "tribunal-staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/tribunal_test")
	t.Setenv("BROKER_ADDRS", "broker-1:9092, broker-2:9092 ,")
	t.Setenv("REGISTRY_OWNER", "ops-admin")
	t.Setenv("MINIMUM_STAKE", "250")
	t.Setenv("TREASURY_ACCOUNT", "vault")
	t.Setenv("ENABLE_STAKE_WEIGHTED_PAYOUT", "true")
	t.Setenv("ENABLE_RESOLUTION_AUDIT_CONSUMER", "off")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.ServiceName != "tribunal-staging" || cfg.HTTPPort != "9090" {
		t.Fatalf("unexpected service config %+v", cfg)
	}
	if cfg.PostgresDSN != "postgres://localhost/tribunal_test" {
		t.Fatalf("unexpected dsn %q", cfg.PostgresDSN)
	}
	if len(cfg.BrokerAddrs) != 2 || cfg.BrokerAddrs[0] != "broker-1:9092" || cfg.BrokerAddrs[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.BrokerAddrs)
	}
	if cfg.RegistryOwner != "ops-admin" || cfg.MinimumStake != 250 || cfg.TreasuryAccount != "vault" {
		t.Fatalf("unexpected arbitration config %+v", cfg)
	}
	if !cfg.EnableStakeWeightedPayout {
		t.Fatalf("expected stake-weighted payout enabled")
	}
	if cfg.EnableResolutionAuditConsumer {
		t.Fatalf("expected resolution audit consumer disabled")
	}
}

func TestLoadFallsBackOnUnparseableValues(t *testing.T) {
	t.Setenv("MINIMUM_STAKE", "a-lot")
	t.Setenv("ENABLE_STAKE_WEIGHTED_PAYOUT", "banana")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.MinimumStake != 10 {
		t.Fatalf("expected fallback stake 10, got %d", cfg.MinimumStake)
	}
	if cfg.EnableStakeWeightedPayout {
		t.Fatalf("expected unparseable flag to fall back to off")
	}
}
