package catalog

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseDownloads converts a downloads display string such as "12.5k", "1.2M" or "850" into a number.
// SI prefixes are honoured, an uppercase 'K' is treated as kilo and a lowercase 'm' as mega.
// Values that cannot be parsed, and negative values, count as zero.
func ParseDownloads(downloads string) float64 {
	v := strings.TrimSpace(downloads)
	if v == "" {
		return 0
	}

	// Display strings use 'K' for thousands and 'm' for millions; a count is never in milli units.
	v = strings.NewReplacer("K", "k", "m", "M").Replace(v)

	// Trailing decoration such as "+" in "10k+" is returned as the unit and ignored.
	n, _, err := humanize.ParseSI(v)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
