package platform

// ScrollView carries the scroll-enable flag of the view hosting a chart.
// The mobile toolkit forwards it to its native scroll view; the desktop
// toolkit has no such property, so the flag is only stored.
type ScrollView struct {
	toolkit  Toolkit
	disabled bool
	native   func(enabled bool)
}

// NewScrollView returns a scroll view with scrolling enabled. native, if
// non-nil, receives every change on the mobile toolkit.
func NewScrollView(toolkit Toolkit, native func(enabled bool)) *ScrollView {
	return &ScrollView{toolkit: toolkit, native: native}
}

// ScrollEnabled reports whether the user can scroll the view.
func (v *ScrollView) ScrollEnabled() bool {
	return !v.disabled
}

// SetScrollEnabled enables or disables scrolling.
func (v *ScrollView) SetScrollEnabled(enabled bool) {
	v.disabled = !enabled
	if v.toolkit == ToolkitMobile && v.native != nil {
		v.native(enabled)
	}
}
