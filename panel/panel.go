// Package panel provides the z-order stack that resolves overlap
// between windows during compositing. A Panel is an ordering handle; a
// Stack recomposes its visible panels bottom-to-top so that the
// topmost panel's cells win.
package panel

// Composer recomposes a drawable region onto the screen back buffer.
type Composer interface {
	Compose()
}

// Panel is a z-order handle for one Composer. Hiding a panel excludes
// it from compositing without touching its contents.
type Panel struct {
	target Composer
	stack  *Stack
	hidden bool
}

// Hidden reports whether the panel is excluded from compositing.
func (p *Panel) Hidden() bool {
	return p.hidden
}

// Hide excludes the panel from compositing.
func (p *Panel) Hide() {
	p.hidden = true
}

// Show includes the panel in compositing again.
func (p *Panel) Show() {
	p.hidden = false
}

// Remove detaches the panel from its stack entirely.
func (p *Panel) Remove() {
	p.stack.remove(p)
}

// Top raises the panel above every other panel in its stack.
func (p *Panel) Top() {
	p.stack.remove(p)
	p.stack.panels = append(p.stack.panels, p)
}

// Bottom lowers the panel below every other panel in its stack.
func (p *Panel) Bottom() {
	p.stack.remove(p)
	p.stack.panels = append([]*Panel{p}, p.stack.panels...)
}

// Stack is an ordered set of panels, bottom first.
type Stack struct {
	panels []*Panel
}

// NewStack returns an empty panel stack.
func NewStack() *Stack {
	return &Stack{}
}

// Add pushes a new panel for target on top of the stack.
func (s *Stack) Add(target Composer) *Panel {
	p := &Panel{target: target, stack: s}
	s.panels = append(s.panels, p)
	return p
}

// Remove drops a panel from the stack entirely.
func (s *Stack) Remove(p *Panel) {
	s.remove(p)
}

// Len returns the number of panels, hidden ones included.
func (s *Stack) Len() int {
	return len(s.panels)
}

// Update recomposes every visible panel in bottom-to-top order. It
// does not flush; the screen flush is a separate batched operation.
func (s *Stack) Update() {
	for _, p := range s.panels {
		if !p.hidden {
			p.target.Compose()
		}
	}
}

func (s *Stack) remove(p *Panel) {
	for i, q := range s.panels {
		if q == p {
			s.panels = append(s.panels[:i], s.panels[i+1:]...)
			return
		}
	}
}
