package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Environment    string   `json:"environment"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		CSRFKey        string   `json:"csrf_key"`
		BcryptCost     int      `json:"bcrypt_cost"`
		TrustedOrigins []string `json:"trusted_origins"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		MaxBodyBytes    int64    `json:"max_body_bytes"`
		LoginRateLimit  float64  `json:"login_rate_limit"`
		LoginRateBurst  int      `json:"login_rate_burst"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment:   jsonCfg.App.Environment,
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			CSRFKey:       jsonCfg.App.CSRFKey,
			BcryptCost:    jsonCfg.App.BcryptCost,

			TrustedOrigins: jsonCfg.App.TrustedOrigins,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			MaxBodyBytes:    jsonCfg.Server.MaxBodyBytes,
			LoginRateLimit:  jsonCfg.Server.LoginRateLimit,
			LoginRateBurst:  jsonCfg.Server.LoginRateBurst,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
