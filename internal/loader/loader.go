// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a ROM image from disk. CHIP-8 ROMs are raw byte streams
// without any header, the file contents are returned verbatim. Files with
// an unexpected extension load anyway but cause a warning, they are
// usually images for a different system.
func (l *Loader) Load(path string) ([]byte, error) {
	if !knownExtension(path) {
		l.logger.Warn("Unexpected ROM file extension, expected .ch8 or .rom",
			log.String("file", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file %s contains no data", path)
	}
	return data, nil
}

// knownExtension reports whether the file name carries a common CHIP-8
// ROM extension.
func knownExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ch8", ".rom":
		return true
	default:
		return false
	}
}
