// Package meta loads YAML (or JSON) documents from any afs supported URL,
// expanding ${env.NAME} expressions before decoding.
package meta

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"
)

// Service loads documents relative to a base URL
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service. options are passed to every download, for
// example an *embed.FS for embed:// URLs.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// URL resolves location against the base URL.
func (s *Service) URL(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || path.IsAbs(location) {
		return location
	}
	return strings.TrimRight(s.baseURL, "/") + "/" + location
}

// Load downloads location and decodes it into target.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return fmt.Errorf("failed to download %v: %w", URL, err)
	}
	return Decode([]byte(expandEnv(string(data))), target, URL)
}

// Decode decodes YAML data into target; source is used in error messages.
func Decode(data []byte, target interface{}, source string) error {
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %v: %w", source, err)
	}
	return nil
}
