// Package diagnostics describes operator-facing conditions pushed on /diag.
package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Summary)
}

func UnknownPattern(id string, known []string) Diagnostic {
	return Diagnostic{
		Severity:       Warn,
		Code:           "PATTERN.UNKNOWN",
		Summary:        "Unknown pattern, rendering solid white",
		Detail:         id,
		SuggestedFixes: []string{"Pick one of the registered patterns"},
		Evidence:       map[string]any{"pattern": id, "known": known},
	}
}

func ConfigReloadFailed(path string, err error) Diagnostic {
	return Diagnostic{
		Severity:       Err,
		Code:           "CONFIG.RELOAD_FAILED",
		Summary:        "Config file changed but could not be loaded",
		Detail:         err.Error(),
		LikelyCauses:   []string{"Syntax error", "File saved half way"},
		SuggestedFixes: []string{"Fix the file and save again; the previous settings stay active"},
		Evidence:       map[string]any{"path": path},
	}
}

func ConfigReloaded(path string) Diagnostic {
	return Diagnostic{
		Severity: Info,
		Code:     "CONFIG.RELOADED",
		Summary:  "Strip settings reloaded from file",
		Evidence: map[string]any{"path": path},
	}
}

func SinkWriteFailed(sink string, err error) Diagnostic {
	return Diagnostic{
		Severity: Err,
		Code:     "SINK.WRITE_FAILED",
		Summary:  "Frame could not be written to output",
		Detail:   err.Error(),
		Evidence: map[string]any{"sink": sink},
	}
}
