package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args and returns the
// resulting partial config together with the remaining positional args.
//
// Flags:
//
//	-a                          HTTP server address in format [host]:[port]
//	-grpc-address               gRPC server address in format [host]:[port]
//	-d                          database DSN
//	-c / -config                JSON file path with configs
//	-env                        deployment environment (development|production)
//	-log-level                  zerolog level name
//	-cookie-name                session cookie name
//	-session-duration           session lifetime (e.g. "720h")
//	-session-refresh-threshold  remaining lifetime that triggers a refresh
//	-rate-limit-attempts        failed logins allowed per window
//	-rate-limit-window          failure counting window (e.g. "15m")
//	-rate-limit-block           block duration after the limit is hit
//	-rate-limit-disabled        turn login rate limiting off
//	-request-timeout            request timeout (e.g. "30s", "1m")
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var (
		serverAddress, grpcServerAddress NetAddress
		cfg                              StructuredConfig
	)

	fs := flag.NewFlagSet("crm-auth", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.Env, "env", "", "Deployment environment (development|production)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Auth.SessionCookieName, "cookie-name", "", "Session cookie name")
	fs.DurationVar(&cfg.Auth.SessionDuration, "session-duration", 0, "Session lifetime (e.g., 720h)")
	fs.DurationVar(&cfg.Auth.RefreshThreshold, "session-refresh-threshold", 0, "Remaining lifetime that triggers a refresh (e.g., 360h)")
	fs.IntVar(&cfg.RateLimit.MaxAttempts, "rate-limit-attempts", 0, "Failed logins allowed per window")
	fs.DurationVar(&cfg.RateLimit.Window, "rate-limit-window", 0, "Failure counting window (e.g., 15m)")
	fs.DurationVar(&cfg.RateLimit.BlockDuration, "rate-limit-block", 0, "Block duration after the limit is hit (e.g., 30m)")
	fs.BoolVar(&cfg.RateLimit.Disabled, "rate-limit-disabled", false, "Disable login rate limiting")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()

	return &cfg, fs.Args(), nil
}

// String returns a canonical host:port string for a NetAddress.
// An unset address yields an empty string so it does not shadow other
// sources during merging.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless host is
// "localhost" or empty (all interfaces).
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
