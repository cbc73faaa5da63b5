package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	mpdproto "github.com/avdata/go-mpdproto"
)

// config is the effective connection configuration. Precedence, lowest to
// highest: built-in defaults, the TOML config file, a .env file plus the
// MPD_HOST/MPD_PORT environment convention, command-line flags.
type config struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func defaultConfig() config {
	return config{
		Host:           "localhost",
		Port:           mpdproto.DefaultPort,
		TimeoutSeconds: 30,
	}
}

// commandContext carries the shared flag targets and the lazily loaded
// configuration for all subcommands.
type commandContext struct {
	hostFlag     *string
	portFlag     *int
	passwordFlag *string
	configFlag   *string
	timeoutFlag  *int

	cfg    *config
	getenv func(string) string
}

func newCommandContext(host *string, port *int, password, configPath *string, timeout *int) *commandContext {
	return &commandContext{
		hostFlag:     host,
		portFlag:     port,
		passwordFlag: password,
		configFlag:   configPath,
		timeoutFlag:  timeout,
		getenv:       os.Getenv,
	}
}

func (c *commandContext) ensureConfig() (config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}

	cfg := defaultConfig()

	path, explicit := c.configPath()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// optional default location
		default:
			return config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	// a .env in the working directory feeds the MPD_* variables
	_ = godotenv.Load()
	applyEnv(&cfg, c.getenv)

	if *c.hostFlag != "" {
		cfg.Host = *c.hostFlag
	}
	if *c.portFlag != 0 {
		cfg.Port = *c.portFlag
	}
	if *c.passwordFlag != "" {
		cfg.Password = *c.passwordFlag
	}
	if *c.timeoutFlag > 0 {
		cfg.TimeoutSeconds = *c.timeoutFlag
	}

	c.cfg = &cfg
	return cfg, nil
}

func (c *commandContext) configPath() (path string, explicit bool) {
	if *c.configFlag != "" {
		return *c.configFlag, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "stickerctl", "config.toml"), false
}

// applyEnv folds in MPD's environment convention: MPD_HOST may carry a
// password prefix ("password@host") and may be a Unix socket path.
func applyEnv(cfg *config, getenv func(string) string) {
	if host := getenv("MPD_HOST"); host != "" {
		if password, rest, found := strings.Cut(host, "@"); found && rest != "" {
			cfg.Password = password
			cfg.Host = rest
		} else {
			cfg.Host = host
		}
	}
	if port := getenv("MPD_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Port = n
		}
	}
}

// addr returns the dial address: the socket path itself, or host:port
func (cfg config) addr() string {
	if strings.HasPrefix(cfg.Host, "/") {
		return cfg.Host
	}
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

func (cfg config) timeout() time.Duration {
	if cfg.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// dial opens the configured connection and returns it with a context
// bounding the whole exchange.
func (c *commandContext) dial(parent context.Context) (*mpdproto.Client, context.Context, context.CancelFunc, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(parent, cfg.timeout())

	var opts []mpdproto.Option
	if cfg.Password != "" {
		opts = append(opts, mpdproto.WithPassword(cfg.Password))
	}
	client, err := mpdproto.DialContext(ctx, cfg.addr(), opts...)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return client, ctx, cancel, nil
}
