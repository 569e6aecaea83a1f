// Package deps reports the availability of the external tools tracksplit
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"tracksplit/internal/config"
)

// Requirement defines an external dependency tracksplit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Optional dependencies only matter for some commands; their absence
	// is reported but never fails a check.
	Optional bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the tool set a full tracksplit installation needs.
// yt-dlp is optional: splitting local files never invokes it.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "ffmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "transcodes track spans to MP3",
		},
		{
			Name:        "ffprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "reads source duration and stream properties",
		},
		{
			Name:        "yt-dlp",
			Command:     "yt-dlp",
			Description: "downloads remote sources for --url runs",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns an error naming every unavailable required tool.
func MissingRequired(statuses []Status) error {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("required tools not found: %s", strings.Join(missing, ", "))
}
