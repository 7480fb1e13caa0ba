package analysis

import (
	"strings"

	"github.com/csv-insight/backend/internal/locale"
	"github.com/csv-insight/backend/internal/models"
)

// DefaultMetadataScanLines is how many leading lines are searched for a description.
const DefaultMetadataScanLines = 10

// ExtractMetadata describes content using marker phrases found in its first
// scanLines lines. Row and column counts are left for the caller.
func ExtractMetadata(content string, tag models.DialectTag, profile *locale.Profile, scanLines int) models.Metadata {
	if scanLines <= 0 {
		scanLines = DefaultMetadataScanLines
	}
	lines := strings.SplitN(strings.TrimSpace(content), "\n", scanLines+1)
	if len(lines) > scanLines {
		lines = lines[:scanLines]
	}
	return models.Metadata{
		FileType:    tag,
		Description: profile.Describe(string(tag), lines),
	}
}
