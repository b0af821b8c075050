package serial

import (
	"fmt"
	"path/filepath"

	"arduino_agent/internal/models"

	"go.bug.st/serial/enumerator"
)

// ListPorts returns available serial ports in the order the OS reports them.
func ListPorts() ([]models.SerialDevice, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	result := make([]models.SerialDevice, 0, len(ports))
	for _, p := range ports {
		result = append(result, models.SerialDevice{
			Path:         p.Name,
			Description:  describe(p),
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
		})
	}
	return result, nil
}

// describe picks the human-readable description: the USB product string when
// the OS has one, otherwise the device base name (ttyACM0, cu.usbmodem1101).
func describe(p *enumerator.PortDetails) string {
	if p.Product != "" {
		return p.Product
	}
	base := filepath.Base(p.Name)
	if p.IsUSB {
		return "USB Serial Device (" + base + ")"
	}
	return base
}
