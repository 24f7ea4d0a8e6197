// Package tools registers the built-in tool catalog: weather lookup, file
// read/write, web search, report generation and email delivery. Everything
// here sits behind the registry's ToolDefinition abstraction; the dispatcher
// core never depends on the internals of any of these.
package tools

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/harits/aksi/pkg/registry"
)

// Options configures built-in tool registration.
type Options struct {
	// WorkspaceRoot confines file tools. Required.
	WorkspaceRoot string

	// WeatherBaseURL overrides the wttr.in endpoint, mainly for tests.
	WeatherBaseURL string

	// SearchBaseURL overrides the DuckDuckGo endpoint, mainly for tests.
	SearchBaseURL string

	// HTTPClient is used by network tools. Defaults to a 10s-timeout client.
	HTTPClient *http.Client

	// Now supplies report timestamps. Defaults to time.Now.
	Now func() time.Time
}

const (
	defaultWeatherBaseURL = "https://wttr.in"
	defaultSearchBaseURL  = "https://api.duckduckgo.com"
)

func (o *Options) applyDefaults() error {
	if o.WorkspaceRoot == "" {
		return errors.New("workspace root is required")
	}
	if o.WeatherBaseURL == "" {
		o.WeatherBaseURL = defaultWeatherBaseURL
	}
	if o.SearchBaseURL == "" {
		o.SearchBaseURL = defaultSearchBaseURL
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return nil
}

// RegisterBuiltins registers the full built-in catalog.
func RegisterBuiltins(reg *registry.Registry, opts Options) error {
	if reg == nil {
		return errors.New("registry is required")
	}
	if err := opts.applyDefaults(); err != nil {
		return err
	}

	defs := []registry.ToolDefinition{
		weatherTool(opts),
		writeFileTool(opts),
		readFileTool(opts),
		searchTool(opts),
		salesReportTool(opts),
		employeeReportTool(opts),
		emailReportTool(opts),
	}

	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("failed to register tool %s: %w", def.Name, err)
		}
	}
	return nil
}

// resolveWorkspacePath joins name onto the workspace root and rejects any
// path that escapes it.
func resolveWorkspacePath(root, name string) (string, error) {
	if name == "" {
		return "", errors.New("filename is required")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	resolved := filepath.Join(absRoot, filepath.Clean(name))
	if resolved != absRoot && !strings.HasPrefix(resolved, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes workspace: %s", name)
	}
	return resolved, nil
}

func stringArg(args map[string]interface{}, key string) string {
	val, _ := args[key].(string)
	return strings.TrimSpace(val)
}
