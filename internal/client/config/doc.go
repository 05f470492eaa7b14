// Package config loads runtime configuration for the simpletwitter CLI.
//
// Values are taken from, in increasing precedence: built-in defaults, a
// JSON file (-c/-config, or SIMPLETWITTER_CLI_CONFIG), the environment
// (SIMPLETWITTER_SERVER_ADDR, SIMPLETWITTER_REQUEST_TIMEOUT) and flags.
//
//	-a string     backend gRPC address, host:port
//	-t duration   per-request timeout, e.g. 3s
//
// The JSON file uses the same names in snake case:
//
//	{"server_endpoint_addr": "127.0.0.1:50051", "request_timeout": "5s"}
package config
