package serial

import (
	"errors"
	"strings"

	"arduino_agent/internal/logger"
	"arduino_agent/internal/models"
)

// DefaultKeywords is the ordered list of description substrings that mark a
// device as a programmable board.
var DefaultKeywords = []string{"arduino", "usb", "ttyacm", "usbmodem"}

// ErrDeviceNotFound is returned when no enumerated device matches a keyword.
var ErrDeviceNotFound = errors.New("arduino device not found")

// Lister enumerates serial devices. ListPorts is the production implementation.
type Lister func() ([]models.SerialDevice, error)

// Locator selects the board to flash from the enumerated serial devices.
type Locator struct {
	list     Lister
	keywords []string
	log      *logger.Logger
}

// NewLocator builds a Locator. Empty keywords fall back to DefaultKeywords.
func NewLocator(list Lister, keywords []string, log *logger.Logger) *Locator {
	if list == nil {
		list = ListPorts
	}
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			normalized = append(normalized, k)
		}
	}
	if len(normalized) == 0 {
		normalized = append(normalized, DefaultKeywords...)
	}
	return &Locator{list: list, keywords: normalized, log: log}
}

// Keywords returns the normalized keyword list.
func (l *Locator) Keywords() []string {
	return append([]string(nil), l.keywords...)
}

// Locate enumerates devices and returns the first one whose description
// matches. Enumeration order is kept as reported; the earlier device wins.
func (l *Locator) Locate() (models.SerialDevice, error) {
	devices, err := l.list()
	if err != nil {
		return models.SerialDevice{}, err
	}
	dev, ok := l.Match(devices)
	if !ok {
		if l.log != nil {
			l.log.Warnw("device_not_found", "enumerated", len(devices))
		}
		return models.SerialDevice{}, ErrDeviceNotFound
	}
	if l.log != nil {
		l.log.Infow("device_detected", "port", dev.Path, "description", dev.Description)
	}
	return dev, nil
}

// List enumerates devices and flags the ones passing the heuristic.
func (l *Locator) List() ([]models.PortEntry, error) {
	devices, err := l.list()
	if err != nil {
		return nil, err
	}
	out := make([]models.PortEntry, 0, len(devices))
	for _, d := range devices {
		out = append(out, models.PortEntry{SerialDevice: d, Matched: l.Matches(d)})
	}
	return out, nil
}

// Match applies the first-match policy to an already enumerated list.
func (l *Locator) Match(devices []models.SerialDevice) (models.SerialDevice, bool) {
	for _, d := range devices {
		if l.Matches(d) {
			return d, true
		}
	}
	return models.SerialDevice{}, false
}

// Matches reports whether the device description contains any keyword.
func (l *Locator) Matches(d models.SerialDevice) bool {
	desc := strings.ToLower(d.Description)
	for _, k := range l.keywords {
		if strings.Contains(desc, k) {
			return true
		}
	}
	return false
}

// Snapshot enumerates and matches without logging; used by the watcher.
func (l *Locator) Snapshot() (models.SerialDevice, bool, error) {
	devices, err := l.list()
	if err != nil {
		return models.SerialDevice{}, false, err
	}
	dev, ok := l.Match(devices)
	return dev, ok, nil
}
