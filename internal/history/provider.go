package history

import (
	"encoding/json"
	"fmt"
	"os"
)

// Provider is one tier of archive storage. Tiers are consulted in
// priority order on load; every writable tier receives best-effort
// writes on persist.
type Provider interface {
	Name() string
	Writable() bool
	Read() (Archive, error)
	Write(Archive) error
}

// FileProvider stores the archive as a pretty-printed JSON file.
type FileProvider struct {
	name     string
	path     string
	writable bool
}

// NewFileProvider creates a file-backed archive tier.
func NewFileProvider(name, path string, writable bool) *FileProvider {
	return &FileProvider{name: name, path: path, writable: writable}
}

// Name returns the tier name
func (p *FileProvider) Name() string { return p.name }

// Writable reports whether this tier accepts writes
func (p *FileProvider) Writable() bool { return p.writable }

// Read loads and parses the archive file
func (p *FileProvider) Read() (Archive, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.path, err)
	}
	if archive == nil {
		// A file holding literal "null" parses without error.
		archive = Archive{}
	}
	return archive, nil
}

// Write persists the archive, pretty-printed
func (p *FileProvider) Write(archive Archive) error {
	if !p.writable {
		return fmt.Errorf("tier %s is read-only", p.name)
	}

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	return nil
}
