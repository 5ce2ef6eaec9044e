package packages

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// minutesPerEntry is the estimated install time for a single entry.
const minutesPerEntry = 0.5

// Stats summarizes a package for display.
type Stats struct {
	Entries                 int    `json:"entries"                 yaml:"entries"`
	TotalSizeBytes          uint64 `json:"totalSizeBytes"          yaml:"totalSizeBytes"`
	TotalSize               string `json:"totalSize"               yaml:"totalSize"`
	EstimatedInstallMinutes int    `json:"estimatedInstallMinutes" yaml:"estimatedInstallMinutes"`
	Ready                   bool   `json:"ready"                   yaml:"ready"`
}

// ComputeStats returns the size, estimated install time and readiness of pkg.
// Entry sizes that are missing or cannot be parsed count as zero.
func ComputeStats(pkg Package) Stats {
	var total uint64
	for _, e := range pkg.Entries {
		total += ParseSize(e.Size)
	}

	return Stats{
		Entries:                 pkg.Len(),
		TotalSizeBytes:          total,
		TotalSize:               humanize.Bytes(total),
		EstimatedInstallMinutes: EstimatedInstallMinutes(pkg.Len()),
		Ready:                   !pkg.IsEmpty(),
	}
}

// EstimatedInstallMinutes is half a minute per entry rounded up, and never less than one minute.
func EstimatedInstallMinutes(entries int) int {
	return max(1, int(math.Ceil(float64(entries)*minutesPerEntry)))
}

// ParseSize parses a display size such as "2.3 MB" into bytes.
func ParseSize(size string) uint64 {
	size = strings.TrimSpace(size)
	if size == "" {
		return 0
	}

	n, err := humanize.ParseBytes(size)
	if err != nil {
		return 0
	}
	return n
}
