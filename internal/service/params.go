package service

import "time"

const timeLayout = time.RFC3339

type UploadParams struct {
	Source string // sketch text, written verbatim
	FQBN   string // empty: configured default board
}

// LogFilter narrows the event history by time range and type.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // empty or one of models.EventTypes, any case
	Limit int       // keep only the newest Limit events; 0 means all
}
