package config

import "time"

// Environment overrides. Values from the environment are never written back
// to config.json.
const (
	EnvConfigDir  = "TRAG_CONFIG_DIR"
	EnvRPCURL     = "TRAG_RPC_URL"
	EnvPrivateKey = "TRAG_PRIVATE_KEY"
)

// Timeout constants used across cmd.
const (
	RPCSelectTimeout = 10 * time.Second // endpoint benchmark / selection
	ReadTimeout      = 30 * time.Second // one read command
	TxConfirmTimeout = 2 * time.Minute  // standard transaction confirmation wait
	TxPollInterval   = 2 * time.Second
)
