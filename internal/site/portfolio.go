package site

import "time"

const (
	// FilterAll is the category that matches every portfolio item.
	FilterAll = "all"

	DefaultFilterShowDelay = 100 * time.Millisecond
	DefaultFilterHideDelay = 300 * time.Millisecond
)

// Portfolio filters the portfolio grid by category.
//
// Timers from an earlier pass are never cancelled, so a quick succession of
// filter clicks can leave the last timer to fire deciding an item's state.
type Portfolio struct {
	buttons   []FilterButton
	items     []FilterItem
	sched     Scheduler
	showDelay time.Duration
	hideDelay time.Duration
	current   string
}

// NewPortfolio binds the filter buttons and items and reveals every item.
func NewPortfolio(buttons []FilterButton, items []FilterItem, sched Scheduler, showDelay, hideDelay time.Duration) *Portfolio {
	p := &Portfolio{
		buttons:   buttons,
		items:     items,
		sched:     sched,
		showDelay: showDelay,
		hideDelay: hideDelay,
		current:   FilterAll,
	}
	for _, item := range items {
		item.AddClass(ClassShow)
	}
	return p
}

// Select is the click handler for the filter button at index.
func (p *Portfolio) Select(index int) {
	if index < 0 || index >= len(p.buttons) {
		return
	}
	for _, b := range p.buttons {
		b.RemoveClass(ClassActive)
	}
	button := p.buttons[index]
	button.AddClass(ClassActive)
	p.Filter(button.Data("filter"))
}

// Filter shows the items in category and hides the rest.
func (p *Portfolio) Filter(category string) {
	p.current = category
	for _, item := range p.items {
		item := item
		if category == FilterAll || item.Data("category") == category {
			item.SetDisplay("block")
			p.sched.AfterFunc(p.showDelay, func() {
				item.AddClass(ClassShow)
			})
			continue
		}
		item.RemoveClass(ClassShow)
		p.sched.AfterFunc(p.hideDelay, func() {
			item.SetDisplay("none")
		})
	}
}

// Current returns the category of the last filter pass.
func (p *Portfolio) Current() string {
	return p.current
}
