package models

// Upload stages reported on failure.
const (
	StageStage   = "stage"
	StageCompile = "compile"
	StageUpload  = "upload"
)

// Invocation is the outcome of one toolchain process run.
type Invocation struct {
	Success  bool
	ExitCode int    // -1 when the process could not be started
	Logs     string // stdout, newline, stderr
}

// UploadResult is the terminal outcome of one stage/compile/upload operation.
type UploadResult struct {
	Success    bool   `json:"success"`
	Stage      string `json:"stage,omitempty"` // compile | upload, empty on success
	Logs       string `json:"logs"`
	Port       string `json:"port,omitempty"`
	FQBN       string `json:"fqbn,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}
