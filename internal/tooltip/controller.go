// Package tooltip renders marker tooltips and models their show/hide behavior.
//
// The Controller is the reference for what the page script does in the
// browser: the same opacities, fade durations and cursor offset are exported
// through Script.
package tooltip

import (
	"html/template"
	"time"

	"github.com/couchcryptid/meteorite-map/internal/domain"
	"github.com/jonboulle/clockwork"
)

const (
	VisibleOpacity = 0.9
	HiddenOpacity  = 0.0

	FadeIn  = 200 * time.Millisecond
	FadeOut = 250 * time.Millisecond

	// OffsetY lifts the tooltip above the cursor, in page pixels.
	OffsetY = -28.0

	// EasingCSS is the CSS timing function closest to cubicInOut.
	EasingCSS = "cubic-bezier(0.645, 0.045, 0.355, 1)"
)

// State is the tooltip's target visibility.
type State int

const (
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// View is a snapshot of the tooltip element.
type View struct {
	State   State
	Opacity float64
	Left    float64
	Top     float64
	Content template.HTML
}

// Controller tracks one tooltip element. It is not safe for concurrent use;
// like the DOM it mirrors, it is driven from a single event loop.
type Controller struct {
	renderer *Renderer
	clock    clockwork.Clock

	state   State
	content template.HTML
	left    float64
	top     float64

	// current fade
	from, to float64
	start    time.Time
	duration time.Duration
}

// NewController creates a hidden tooltip.
func NewController(renderer *Renderer, clock clockwork.Clock) *Controller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Controller{renderer: renderer, clock: clock, start: clock.Now()}
}

// Enter shows the tooltip for m at the cursor's page position. Entering
// while already visible re-renders and repositions without queuing.
func (c *Controller) Enter(m domain.Marker, pageX, pageY float64) error {
	html, err := c.renderer.Render(m)
	if err != nil {
		return err
	}
	c.content = html
	c.left = pageX
	c.top = pageY + OffsetY
	c.fadeTo(Visible, VisibleOpacity, FadeIn)
	return nil
}

// Leave hides the tooltip. Content and position are kept while it fades.
func (c *Controller) Leave() {
	c.fadeTo(Hidden, HiddenOpacity, FadeOut)
}

// Opacity is the tooltip's opacity right now.
func (c *Controller) Opacity() float64 {
	if c.duration <= 0 {
		return c.to
	}
	t := float64(c.clock.Since(c.start)) / float64(c.duration)
	if t >= 1 {
		return c.to
	}
	if t < 0 {
		t = 0
	}
	return c.from + (c.to-c.from)*cubicInOut(t)
}

// View returns the current snapshot.
func (c *Controller) View() View {
	return View{
		State:   c.state,
		Opacity: c.Opacity(),
		Left:    c.left,
		Top:     c.top,
		Content: c.content,
	}
}

// fadeTo starts a transition from the current opacity, interrupting any fade in progress.
func (c *Controller) fadeTo(s State, opacity float64, d time.Duration) {
	c.from = c.Opacity()
	c.to = opacity
	c.start = c.clock.Now()
	c.duration = d
	c.state = s
}

func cubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
