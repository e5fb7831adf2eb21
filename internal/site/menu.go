package site

// MobileMenu drives the navigation overlay on small screens.
//
// The button, the panel and the body carry their state classes in lock-step.
type MobileMenu struct {
	button ClassList
	panel  ClassList
	body   ClassList
}

// NewMobileMenu binds the menu button, the overlay panel and the page body.
func NewMobileMenu(button, panel, body ClassList) *MobileMenu {
	return &MobileMenu{button: button, panel: panel, body: body}
}

// Toggle is the menu button click handler.
func (m *MobileMenu) Toggle() {
	m.button.ToggleClass(ClassActive)
	m.panel.ToggleClass(ClassShow)
	m.body.ToggleClass(ClassMenuOpen)
}

// Close is the click handler for links inside the menu. It always closes.
func (m *MobileMenu) Close() {
	m.button.RemoveClass(ClassActive)
	m.panel.RemoveClass(ClassShow)
	m.body.RemoveClass(ClassMenuOpen)
}

// Open reports whether the overlay is shown.
func (m *MobileMenu) Open() bool {
	return m.panel.HasClass(ClassShow)
}
