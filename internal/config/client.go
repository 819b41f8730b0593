package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// ErrInvalidClientConfigs indicates an unusable client configuration.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// ClientConfig configures the command-line client.
type ClientConfig struct {
	// ServerAddress is the base URL of the server (e.g. "http://localhost:8080").
	// A bare host:port is accepted.
	// Env: ITEM_CUSTODY_SERVER
	ServerAddress string `env:"ITEM_CUSTODY_SERVER"`

	// RequestTimeout bounds every request made by the client.
	// Env: ITEM_CUSTODY_TIMEOUT
	RequestTimeout time.Duration `env:"ITEM_CUSTODY_TIMEOUT"`

	// Token is the bearer token attached to authenticated requests.
	// Env: ITEM_CUSTODY_TOKEN
	Token string `env:"ITEM_CUSTODY_TOKEN"`
}

// GetClientConfig merges defaults, environment variables and the leading
// flags of args (later non-zero wins). It returns the arguments left after
// the flags, i.e. the subcommand and its own arguments.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg := &ClientConfig{
		ServerAddress:  "http://localhost:8080",
		RequestTimeout: 15 * time.Second,
	}

	envCfg, err := parseEnv[ClientConfig]()
	if err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("item-custody-client", flag.ContinueOnError)
	flagCfg := &ClientConfig{}
	fs.StringVar(&flagCfg.ServerAddress, "s", "", "Server base URL")
	fs.DurationVar(&flagCfg.RequestTimeout, "timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&flagCfg.Token, "t", "", "Bearer token")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	for _, layer := range []*ClientConfig{envCfg, flagCfg} {
		if err := mergo.Merge(cfg, layer, mergo.WithOverride); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if cfg.ServerAddress == "" {
		return nil, nil, fmt.Errorf("%w: empty server address", ErrInvalidClientConfigs)
	}

	return cfg, fs.Args(), nil
}
