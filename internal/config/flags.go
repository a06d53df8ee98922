package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-hub-address bridge WebSocket hub address in format [host]:[port]
//	-d database DSN
//	-fingerprints fingerprint store path (SQLite file or ":memory:")
//	-base-url remote bookmark store base URL
//	-token bearer token for the remote bookmark store
//	-c/-config json file path with configs
//	-probe-timeout connectivity probe timeout (e.g., "5s")
//	-request-timeout per-request timeout (e.g., "15s")
//	-warmup-delay delay before a delivery retry (e.g., "1s")
//	-sync-interval background sync period (e.g., "5m")
//	-sync-timeout overall sync run timeout (e.g., "60s")
//	-event-debounce change-event debounce window (e.g., "2s")
func ParseFlags() *StructuredConfig {
	var serverAddress, hubAddress NetAddress
	var databaseDSN string
	var fingerprintsPath string
	var baseURL string
	var token string
	var jsonConfigPath string
	var probeTimeout time.Duration
	var requestTimeout time.Duration
	var warmupDelay time.Duration
	var syncInterval time.Duration
	var syncTimeout time.Duration
	var eventDebounce time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&hubAddress, "hub-address", "Bridge hub address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&fingerprintsPath, "fingerprints", "", "Fingerprint store path")
	flag.StringVar(&baseURL, "base-url", "", "Remote bookmark store base URL")
	flag.StringVar(&token, "token", "", "Bearer token for the remote bookmark store")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&probeTimeout, "probe-timeout", 0, "Connectivity probe timeout (e.g., 5s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Per-request timeout (e.g., 15s)")
	flag.DurationVar(&warmupDelay, "warmup-delay", 0, "Delay before a delivery retry (e.g., 1s)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 5m)")
	flag.DurationVar(&syncTimeout, "sync-timeout", 0, "Overall sync run timeout (e.g., 60s)")
	flag.DurationVar(&eventDebounce, "event-debounce", 0, "Change-event debounce window (e.g., 2s)")

	flag.Parse()

	return &StructuredConfig{
		Bridge: Bridge{
			HubAddress:     hubAddress.String(),
			ProbeTimeout:   probeTimeout,
			RequestTimeout: requestTimeout,
			WarmupDelay:    warmupDelay,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			Token:          token,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Fingerprints: Fingerprints{
				Path: fingerprintsPath,
			},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			SyncTimeout:   syncTimeout,
			EventDebounce: eventDebounce,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
