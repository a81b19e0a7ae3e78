package radios

import (
	"fmt"
	"strings"
)

// Axis selects which of a profile's version declarations a validation
// runs against.
type Axis int

const (
	// AxisFirmware validates against the profile's firmware declarations.
	AxisFirmware Axis = iota
	// AxisCPS validates against the programming-software declarations.
	AxisCPS
)

func (a Axis) String() string {
	if a == AxisFirmware {
		return "firmware"
	}
	return "cps"
}

// Profile describes one supported hardware target: identity plus the
// version declarations for both axes. Profiles are built once from
// static registration data and never mutated.
type Profile struct {
	Manufacturer string
	Model        string
	Variant      string
	Key          string

	Firmware []VersionDescriptor
	CPS      []VersionDescriptor
}

// FullModel returns the model with its variant label, e.g.
// "AT-D878UV II Plus (Plus)".
func (p *Profile) FullModel() string {
	if p.Variant == "" {
		return p.Model
	}
	return fmt.Sprintf("%s (%s)", p.Model, p.Variant)
}

// Descriptors returns the declarations for one axis.
func (p *Profile) Descriptors(axis Axis) []VersionDescriptor {
	if axis == AxisFirmware {
		return p.Firmware
	}
	return p.CPS
}

// SupportedVersions renders the axis declarations for display, e.g.
// "Anytone-CPS 3.00-3.08, CHIRP-next 20240801+". Returns "Unknown" when
// the profile declares nothing on that axis.
func (p *Profile) SupportedVersions(axis Axis) string {
	descs := p.Descriptors(axis)
	if len(descs) == 0 {
		return "Unknown"
	}
	parts := make([]string, len(descs))
	for i, d := range descs {
		parts[i] = d.Display()
	}
	return strings.Join(parts, ", ")
}

// String is the one-line listing form:
// "Anytone - AT-D878UV II (Plus) | FW: ... | CPS: ...".
func (p *Profile) String() string {
	return fmt.Sprintf("%s - %s | FW: %s | CPS: %s",
		p.Manufacturer, p.FullModel(),
		p.SupportedVersions(AxisFirmware), p.SupportedVersions(AxisCPS))
}
