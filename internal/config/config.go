// Package config resolves the portal API base URL and loads the optional
// client configuration file.
//
// The base URL policy mirrors the portal deployment layout: loopback hosts
// get the fixed local development endpoint, anything else is assumed to
// serve the API under /api on its own origin. The ambient resolution is
// computed once per process and frozen afterwards.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
)

const (
	// LocalAPIBase is the fixed local development endpoint
	LocalAPIBase = "http://localhost:8080/api"

	// EnvAPIURL overrides the resolved base URL when set
	EnvAPIURL = "HACKDESK_API_URL"

	// DirName is the per-user state directory under $HOME
	DirName = ".hackdesk"

	configFileName = "config.yaml"
)

// APIBase returns the portal API base URL for the given hostname.
//
// Loopback names resolve to the fixed local development endpoint; any
// other hostname resolves to the /api path on that host's origin. An
// empty hostname counts as local.
func APIBase(hostname string) string {
	switch hostname {
	case "", "localhost", "127.0.0.1", "::1":
		return LocalAPIBase
	}
	return "https://" + hostname + "/api"
}

// File is the on-disk client configuration, stored as YAML at
// ~/.hackdesk/config.yaml. All fields are optional.
type File struct {
	// Server is the portal hostname, or a full base URL when it
	// contains a scheme
	Server string `yaml:"server,omitempty"`

	// LogLevel overrides the default log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level,omitempty"`
}

// Dir returns the per-user state directory, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", hderrors.Wrap(hderrors.ErrCodeConfigRead, "cannot determine home directory", err)
	}
	return filepath.Join(home, DirName), nil
}

// Load reads the configuration file at path. A missing file is not an
// error; it yields the zero configuration.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, hderrors.Wrap(hderrors.ErrCodeConfigRead, fmt.Sprintf("cannot read config file %s", path), err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, hderrors.Wrap(hderrors.ErrCodeConfigInvalid, fmt.Sprintf("malformed config file %s", path), err)
	}
	return &f, nil
}

// LoadDefault reads the configuration file from the default location.
func LoadDefault() (*File, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return Load(filepath.Join(dir, configFileName))
}

// baseURLFor turns a server value into a base URL. Values carrying a
// scheme are taken verbatim (minus a trailing slash); bare hostnames go
// through the APIBase policy.
func baseURLFor(server string) string {
	if server == "" {
		return LocalAPIBase
	}
	if strings.Contains(server, "://") {
		return strings.TrimRight(server, "/")
	}
	return APIBase(server)
}

var (
	resolveOnce sync.Once
	resolvedURL string
)

// ResolveBaseURL computes the API base URL from, in order of
// precedence: the explicit value (--server flag), the HACKDESK_API_URL
// environment variable, the config file, and finally the local default.
// An explicit value always wins and is resolved fresh; the ambient
// resolution (environment and config file) is computed once per process
// and frozen afterwards.
func ResolveBaseURL(explicit string) string {
	if explicit != "" {
		return baseURLFor(explicit)
	}

	resolveOnce.Do(func() {
		resolvedURL = resolveAmbient()
	})
	return resolvedURL
}

func resolveAmbient() string {
	if env := os.Getenv(EnvAPIURL); env != "" {
		return baseURLFor(env)
	}

	if f, err := LoadDefault(); err == nil && f.Server != "" {
		return baseURLFor(f.Server)
	}

	return LocalAPIBase
}
