package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file searched for in the user and local directories.
const FileName = "crosser.yaml"

// fetchTimeout bounds a remote configuration request.
const fetchTimeout = 10 * time.Second

// maxDocumentSize caps remote documents.
const maxDocumentSize = 1 << 20

// Load loads and validates the game configuration.
// Search order: source (file path or http(s) URL) -> ~/.crosser/configs/crosser.yaml ->
// ./configs/crosser.yaml -> embedded default.
// An explicit source never falls back: its failure is returned to the caller.
func Load(ctx context.Context, source string) (*GameConfig, error) {
	if source != "" {
		data, err := read(ctx, source)
		if err != nil {
			return nil, err
		}
		return Parse(data, source)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			return Parse(data, userCfgPath)
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", FileName)
	if data, err := os.ReadFile(localPath); err == nil {
		return Parse(data, localPath)
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultCrosserYAML, "embedded default")
	if err != nil {
		fallback := DefaultGameConfig()
		return &fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML or JSON document and validates it.
// name identifies the document in error messages.
func Parse(data []byte, name string) (*GameConfig, error) {
	var cfg GameConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("config: %s: %w: empty document", name, ErrInvalidConfig)
		}
		return nil, fmt.Errorf("config: %s: %w: %v", name, ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", name, err)
	}
	return &cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg *GameConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// read returns the raw bytes of a file path or http(s) URL.
func read(ctx context.Context, source string) ([]byte, error) {
	if isRemote(source) {
		return fetch(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w: %v", source, ErrFetch, err)
	}
	return data, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// fetch downloads a configuration document over HTTP.
func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("config: bad url %s: %w: %v", url, ErrFetch, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("config: failed to load %s: %w: %v", url, ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("config: failed to load %s: %w: %s", url, ErrFetch, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w: %v", url, ErrFetch, err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crosser", "configs", filename)
}
