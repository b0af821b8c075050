package models

import "time"

// Phases of the upload state machine.
const (
	PhaseIdle      = "IDLE"
	PhaseStaging   = "STAGING"
	PhaseCompiling = "COMPILING"
	PhaseUploading = "UPLOADING"
)

// UploadSummary is the short form of the last finished upload.
type UploadSummary struct {
	Success    bool      `json:"success"`
	Stage      string    `json:"stage,omitempty"`
	Port       string    `json:"port,omitempty"`
	FQBN       string    `json:"fqbn,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// AgentStatus is the current snapshot of the agent.
type AgentStatus struct {
	Phase      string         `json:"phase"` // IDLE | STAGING | COMPILING | UPLOADING
	Busy       bool           `json:"busy"`
	Device     *SerialDevice  `json:"device,omitempty"` // board last seen by the watcher
	LastUpload *UploadSummary `json:"last_upload,omitempty"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
