// Package semantics tags chart elements with accessibility roles.
package semantics

import (
	"fmt"

	"github.com/go-drift/chartkit/pkg/graphics"
)

// Role is the accessibility role announced for an element.
type Role int

const (
	RoleNone Role = iota
	RoleChart
	RoleImage
	RoleButton
	RoleHeader
	RoleStaticText
)

var roleNames = map[Role]string{
	RoleNone:       "none",
	RoleChart:      "chart",
	RoleImage:      "image",
	RoleButton:     "button",
	RoleHeader:     "header",
	RoleStaticText: "static_text",
}

// String returns a human-readable representation of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole resolves a role name. The empty string is RoleNone.
func ParseRole(name string) (Role, error) {
	if name == "" {
		return RoleNone, nil
	}
	for r, n := range roleNames {
		if n == name {
			return r, nil
		}
	}
	return RoleNone, fmt.Errorf("unknown role %q", name)
}

// Element is an accessible region of a chart.
type Element struct {
	Label string
	Hint  string
	Rect  graphics.Rect

	role   Role
	native func(Role)
}

// NewElement creates an element. native, if non-nil, receives every role
// change so the host toolkit's accessibility object stays in sync.
func NewElement(label string, native func(Role)) *Element {
	return &Element{Label: label, native: native}
}

// Role returns the element's role.
func (e *Element) Role() Role {
	return e.role
}

// SetRole sets the element's role and forwards it to the native object.
func (e *Element) SetRole(r Role) {
	e.role = r
	if e.native != nil {
		e.native(r)
	}
}

// IsEmpty reports whether the element carries nothing to announce.
func (e *Element) IsEmpty() bool {
	return e.role == RoleNone && e.Label == "" && e.Hint == ""
}
