package config

import (
	"errors"
	"flag"
	"io"
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

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-env deployment environment ("production" hardens the server)
//	-d database DSN
//	-db-driver database driver (pgx or sqlite3)
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-csrf-key CSRF cookie authentication key (32 bytes)
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-shutdown-timeout graceful shutdown timeout
//	-max-body-bytes request body size limit
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-tweeter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var environment string
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration time.Duration
	var csrfKey string
	var requestTimeout, shutdownTimeout time.Duration
	var maxBodyBytes int64

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&environment, "env", "", "Deployment environment")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.StringVar(&csrfKey, "csrf-key", "", "CSRF cookie authentication key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.Int64Var(&maxBodyBytes, "max-body-bytes", 0, "Request body size limit in bytes")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Environment:   environment,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			CSRFKey:       csrfKey,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
			MaxBodyBytes:    maxBodyBytes,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
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
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
