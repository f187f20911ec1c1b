package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBasePath    = "/services"
	defaultTypeRefresh = 30 * time.Second
	defaultRateLimit   = 20
)

// Backend names accepted in STORE_BACKEND.
const (
	backendZooKeeper = "zookeeper"
	backendEtcd      = "etcd"
	backendRedis     = "redis"
	backendMemory    = "memory"
)

type MyRegistryConfig struct {
	HTTPPort     int
	StoreBackend string
	BasePath     string
	TypeRefresh  time.Duration
	RateLimit    float64

	ZooKeeperServers []string
	EtcdEndpoints    []string
	RedisAddr        string
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP and STORE_BACKEND are required, plus the address variable
// of the selected backend: ZK_SERVERS, ETCD_ENDPOINTS or REDIS_ADDR. The
// memory backend needs no address and keeps nothing across restarts.
func LoadConfig() (*MyRegistryConfig, error) {
	httpPortStr := os.Getenv("SERVICE_PORT_HTTP")
	if httpPortStr == "" {
		return nil, fmt.Errorf("SERVICE_PORT_HTTP is required")
	}
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVICE_PORT_HTTP: %w", err)
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		return nil, fmt.Errorf("STORE_BACKEND is required")
	}

	config := &MyRegistryConfig{
		HTTPPort:     httpPort,
		StoreBackend: backend,
		BasePath:     defaultBasePath,
		TypeRefresh:  defaultTypeRefresh,
		RateLimit:    defaultRateLimit,
	}

	if v := os.Getenv("BASE_PATH"); v != "" {
		config.BasePath = v
	}
	if v := os.Getenv("TYPE_INDEX_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TYPE_INDEX_REFRESH: %w", err)
		}
		config.TypeRefresh = d
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		config.RateLimit = f
	}

	switch backend {
	case backendZooKeeper:
		servers := os.Getenv("ZK_SERVERS")
		if servers == "" {
			return nil, fmt.Errorf("ZK_SERVERS is required for the zookeeper backend")
		}
		config.ZooKeeperServers = strings.Split(servers, ",")
	case backendEtcd:
		endpoints := os.Getenv("ETCD_ENDPOINTS")
		if endpoints == "" {
			return nil, fmt.Errorf("ETCD_ENDPOINTS is required for the etcd backend")
		}
		config.EtcdEndpoints = strings.Split(endpoints, ",")
	case backendRedis:
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
		config.RedisAddr = addr
	case backendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}

	return config, nil
}
