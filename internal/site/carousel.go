package site

import (
	"fmt"
	"time"
)

// DefaultCarouselInterval is the automatic advance period of the testimonials.
const DefaultCarouselInterval = 6 * time.Second

// Carousel rotates the testimonial slides.
type Carousel struct {
	slides   []ClassList
	dots     []ClassList
	sched    Scheduler
	interval time.Duration
	index    int
	timer    Timer
}

// NewCarousel binds the slides and their indicator dots. Slides and dots are
// paired by index, so their counts must match.
func NewCarousel(slides, dots []ClassList, sched Scheduler, interval time.Duration) (*Carousel, error) {
	if len(slides) != len(dots) {
		return nil, fmt.Errorf("carousel: %d slides but %d indicators", len(slides), len(dots))
	}
	return &Carousel{slides: slides, dots: dots, sched: sched, interval: interval}, nil
}

// Start begins automatic rotation. A carousel without slides never starts.
func (c *Carousel) Start() {
	if len(c.slides) == 0 {
		return
	}
	c.timer = c.sched.Every(c.interval, c.Next)
}

// Next advances to the following slide, wrapping around.
func (c *Carousel) Next() {
	if len(c.slides) == 0 {
		return
	}
	c.show((c.index + 1) % len(c.slides))
}

// JumpTo is the click handler for indicator k. It also restarts the
// automatic rotation so the next advance is a full interval away.
func (c *Carousel) JumpTo(k int) {
	if k < 0 || k >= len(c.slides) {
		return
	}
	c.show(k)
	if c.timer != nil {
		c.timer.Stop()
	}
	c.Start()
}

// Index returns the active slide.
func (c *Carousel) Index() int {
	return c.index
}

// Stop halts automatic rotation.
func (c *Carousel) Stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Carousel) show(k int) {
	for _, s := range c.slides {
		s.RemoveClass(ClassActive)
	}
	for _, d := range c.dots {
		d.RemoveClass(ClassActive)
	}
	c.slides[k].AddClass(ClassActive)
	c.dots[k].AddClass(ClassActive)
	c.index = k
}
