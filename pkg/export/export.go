// Package export renders a match set as a downloadable file.
package export

import (
	"fmt"

	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
)

// Exporter renders a match set into file bytes
type Exporter interface {
	Export(set *matcher.MatchSet) ([]byte, error)
	// Extension is the file extension without the dot
	Extension() string
	ContentType() string
}

// ForFormat returns the exporter for an output format name ("xlsx" or "csv")
func ForFormat(format string) (Exporter, error) {
	switch format {
	case "xlsx", "":
		return XLSX{}, nil
	case "csv":
		return CSV{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}
