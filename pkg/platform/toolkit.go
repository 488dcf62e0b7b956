package platform

import "fmt"

// Toolkit identifies the windowing toolkit hosting the chart view.
type Toolkit int

const (
	// ToolkitMobile is the touch toolkit. It has a native per-frame callback
	// and a top-left drawing origin.
	ToolkitMobile Toolkit = iota
	// ToolkitDesktop is the desktop toolkit. It has no per-frame callback on
	// views and its bitmap contexts use a bottom-left origin.
	ToolkitDesktop
)

// String returns a human-readable representation of the toolkit.
func (t Toolkit) String() string {
	switch t {
	case ToolkitMobile:
		return "mobile"
	case ToolkitDesktop:
		return "desktop"
	default:
		return fmt.Sprintf("Toolkit(%d)", int(t))
	}
}

// ParseToolkit resolves a toolkit name as written in configuration.
func ParseToolkit(name string) (Toolkit, error) {
	switch name {
	case "mobile", "":
		return ToolkitMobile, nil
	case "desktop":
		return ToolkitDesktop, nil
	default:
		return ToolkitMobile, fmt.Errorf("unknown toolkit %q", name)
	}
}

// Origin is the corner a coordinate space measures from.
type Origin int

const (
	OriginTopLeft Origin = iota
	OriginBottomLeft
)

// NativeOrigin returns the origin of the toolkit's bitmap device space.
func (t Toolkit) NativeOrigin() Origin {
	if t == ToolkitDesktop {
		return OriginBottomLeft
	}
	return OriginTopLeft
}

// HasNativeFrameCallback reports whether views on this toolkit can ask for a
// per-frame callback directly. The desktop toolkit cannot, so animation
// clocks there synthesize one from a display refresh link or a timer.
func (t Toolkit) HasNativeFrameCallback() bool {
	return t == ToolkitMobile
}
