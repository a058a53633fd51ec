// Package bootstrap loads the startup events and clients for a ledger from
// the line-oriented text format or from YAML.
package bootstrap

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
)

// FormatYAML is the YAML input format.
const FormatYAML = "yaml"

//go:embed data/sample.yaml
var sampleFS embed.FS

// FileReader abstracts where bootstrap files are read from.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// EmbeddedFileReader reads from an embed.FS.
type EmbeddedFileReader struct {
	FS embed.FS
}

// ReadFile implements FileReader.
func (e *EmbeddedFileReader) ReadFile(path string) ([]byte, error) {
	return e.FS.ReadFile(path)
}

// FilesystemFileReader reads from the local filesystem, relative to BasePath.
type FilesystemFileReader struct {
	BasePath string
}

// ReadFile implements FileReader.
func (f *FilesystemFileReader) ReadFile(path string) ([]byte, error) {
	if f.BasePath != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.BasePath, path)
	}
	return os.ReadFile(path)
}

// Loader reads bootstrap files through a FileReader.
type Loader struct {
	reader FileReader
}

// NewLoader creates a loader over reader.
func NewLoader(reader FileReader) *Loader {
	return &Loader{reader: reader}
}

// Load reads path and decodes it by extension: .yaml and .yml are YAML,
// anything else is the text format.
func (l *Loader) Load(path string) (ledger.Bootstrap, error) {
	data, err := l.reader.ReadFile(path)
	if err != nil {
		return ledger.Bootstrap{}, errors.WrapIO("read", path, err)
	}
	return Parse(data, FormatFor(path), path)
}

// Load reads a bootstrap file from the local filesystem.
func Load(path string) (ledger.Bootstrap, error) {
	return NewLoader(&FilesystemFileReader{}).Load(path)
}

// Sample returns the bootstrap data compiled into the binary.
func Sample() (ledger.Bootstrap, error) {
	return NewLoader(&EmbeddedFileReader{FS: sampleFS}).Load("data/sample.yaml")
}

// FormatFor returns the format implied by path's extension.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format, file string) (ledger.Bootstrap, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data, file)
	case FormatText:
		return ParseText(data, file)
	default:
		return ledger.Bootstrap{}, errors.NewValidationError("format", format, "unsupported bootstrap format")
	}
}

// ParseYAML decodes the YAML format.
func ParseYAML(data []byte, file string) (ledger.Bootstrap, error) {
	var b ledger.Bootstrap
	if len(strings.TrimSpace(string(data))) == 0 {
		return b, nil
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return ledger.Bootstrap{}, errors.WrapParse(FormatYAML, file, err)
	}
	return b, nil
}
