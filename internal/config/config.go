// Package config loads and validates the on-disk config.toml (spec §6)
// into a common.Config. It is the concrete instance of the config loader
// spec.md treats as an external collaborator (§1): a real caller still
// needs one to run the server.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"

	"github.com/webserv/webserv/common"
	"github.com/webserv/webserv/internal/routes"
	"github.com/webserv/webserv/pkg/logger"
)

// IncorrectConfigMessage is the literal startup diagnostic spec §6 names
// for a missing or unparsable config.toml.
const IncorrectConfigMessage = "⚠️ Incorrect configuration⚠️"

// Load reads and parses the TOML file at path, then validates every
// ServerConfig against invariants R1 (single-entry redirect) and R2
// (unique ports). Invalid ServerConfigs are dropped with a logged
// diagnostic; the remaining ones are returned. Returns an error only when
// the file is missing or fails to parse, per spec §6.
func Load(path string, l logger.Logger) (*common.Config, error) {
	var raw common.Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		l.Error(IncorrectConfigMessage)
		return nil, fmt.Errorf("%s: %w", IncorrectConfigMessage, err)
	}
	markConfiguredRedirects(&raw, meta)
	return Validate(&raw, l), nil
}

// markConfiguredRedirects sets RedirectConfigured on every route whose
// "redirect" table was explicitly present in the TOML source, including
// an empty one — information toml.Decode's metadata preserves but the
// decoded Redirect map itself cannot, since an absent table and an
// empty one both decode to a zero-length map.
func markConfiguredRedirects(cfg *common.Config, meta toml.MetaData) {
	for i := range cfg.Servers {
		for j := range cfg.Servers[i].Routes {
			cfg.Servers[i].Routes[j].RedirectConfigured = meta.IsDefined(
				"servers", strconv.Itoa(i), "routes", strconv.Itoa(j), "redirect",
			)
		}
	}
}

// Validate filters raw.Servers down to the ones passing R1 and R2,
// logging one diagnostic per rejected ServerConfig. It never returns an
// error: a bad ServerConfig is skipped, not fatal (spec §3, §7).
func Validate(raw *common.Config, l logger.Logger) *common.Config {
	var kept []common.ServerConfig
	var diagnostics *multierror.Error

	for i, sc := range raw.Servers {
		if err := validateOne(&sc); err != nil {
			diagnostics = multierror.Append(diagnostics, fmt.Errorf("server[%d] %q: %w", i, sc.HostName, err))
			continue
		}
		kept = append(kept, sc)
	}

	if diagnostics != nil {
		for _, err := range diagnostics.Errors {
			l.Warning("skipping invalid server config: %s", err.Error())
		}
	}

	return &common.Config{Servers: kept}
}

func validateOne(sc *common.ServerConfig) error {
	if !routes.OkCountRedirect(sc.Routes) {
		return errInvalidRedirectCount
	}
	if !routes.OkSamePort(sc) {
		return errDuplicatePorts
	}
	return nil
}

var (
	errInvalidRedirectCount = fmt.Errorf("a route's redirect map must contain exactly one entry (R1)")
	errDuplicatePorts       = fmt.Errorf("ports within a server config must be unique (R2)")
)

// ResolvePath returns the config file path to load: the WEBSERV_CONFIG_PATH
// environment override if set, else "config.toml" in the working directory.
func ResolvePath() string {
	if p := os.Getenv(common.ConfigPathEnv); p != "" {
		return p
	}
	return "config.toml"
}
