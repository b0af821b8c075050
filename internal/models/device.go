package models

// SerialDevice is one serial peripheral as reported by the OS.
type SerialDevice struct {
	Path         string `json:"path"`        // e.g. /dev/ttyACM0, COM3
	Description  string `json:"description"` // product string or device base name
	IsUSB        bool   `json:"is_usb"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// PortEntry is a SerialDevice annotated with whether it passes the board heuristic.
type PortEntry struct {
	SerialDevice
	Matched bool `json:"matched"`
}
