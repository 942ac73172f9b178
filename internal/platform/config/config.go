package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	BrokerAddrs []string

	RegistryOwner   string
	MinimumStake    int64
	TreasuryAccount string

	EnableStakeWeightedPayout     bool
	EnableResolutionAuditConsumer bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "tribunal"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("BROKER_ADDRS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	owner := strings.TrimSpace(os.Getenv("REGISTRY_OWNER"))
	if owner == "" {
		owner = "registry-owner"
	}

	treasury := strings.TrimSpace(os.Getenv("TREASURY_ACCOUNT"))
	if treasury == "" {
		treasury = "arbitration-treasury"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		BrokerAddrs: brokers,

		RegistryOwner:   owner,
		MinimumStake:    envInt64("MINIMUM_STAKE", 10),
		TreasuryAccount: treasury,

		EnableStakeWeightedPayout:     envBool("ENABLE_STAKE_WEIGHTED_PAYOUT", false),
		EnableResolutionAuditConsumer: envBool("ENABLE_RESOLUTION_AUDIT_CONSUMER", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt64(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
