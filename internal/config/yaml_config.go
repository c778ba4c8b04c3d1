package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"linkhub/internal/capability"
)

// Hosts used when no BACKEND_URL is configured, one per capability.
var localHosts = map[capability.Capability]string{
	capability.Users:         "http://ms-users:5000",
	capability.Links:         "http://ms-links:5000",
	capability.Analytics:     "http://ms-analytics:5000",
	capability.Notifications: "http://ms-notifications:5000",
}

// RoutesFile is the structure of the optional routes.yaml file.
//
//	upstreams:
//	  links: http://links.internal:5000
//	  analytics: http://analytics.internal:5000
type RoutesFile struct {
	Upstreams map[string]string `yaml:"upstreams"`
}

// Upstreams maps each capability to the base URL of the backend serving it.
type Upstreams map[capability.Capability]string

// URL returns the base URL for c joined with path.
func (u Upstreams) URL(c capability.Capability, path string) string {
	return strings.TrimSuffix(u[c], "/") + path
}

// IsUnified reports whether every capability resolves to the same host.
func (u Upstreams) IsUnified() bool {
	first := ""
	for _, c := range capability.All {
		if first == "" {
			first = u[c]
			continue
		}
		if u[c] != first {
			return false
		}
	}
	return true
}

// ResolveUpstreams builds the gateway's upstream table. BACKEND_URL wins for
// every capability; otherwise local hosts are used. Entries from the routes
// file, when present, override either.
func ResolveUpstreams(cfg *Config) (Upstreams, error) {
	ups := Upstreams{}
	for _, c := range capability.All {
		if cfg.BackendURL != "" {
			ups[c] = cfg.BackendURL
		} else {
			ups[c] = localHosts[c]
		}
	}

	routes, err := LoadRoutesFile(cfg.RoutesFile)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		return ups, nil
	}

	for name, host := range routes.Upstreams {
		c := capability.Capability(strings.ToLower(name))
		if _, ok := localHosts[c]; !ok {
			return nil, fmt.Errorf("routes file: unknown capability %q", name)
		}
		if host != "" {
			ups[c] = host
		}
	}
	return ups, nil
}

// LoadRoutesFile loads the YAML routes file.
// Returns nil without error if path is empty or the file doesn't exist.
func LoadRoutesFile(path string) (*RoutesFile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var routes RoutesFile
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("routes file: %w", err)
	}
	return &routes, nil
}
