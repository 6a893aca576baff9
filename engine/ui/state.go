package ui

// Program owns the application state behind a widget tree.
type Program interface {
	// Update applies one published message.
	Update(msg Message)
	// View builds the widget tree for the current state.
	View() UIElement
}

// State drives a Program: it queues events, dispatches them to the laid
// out tree and rebuilds the view once messages were applied.
type State struct {
	program  Program
	root     UIElement
	queue    []Event
	cursor   [2]float32
	viewport [4]float32
	dirty    bool
}

func NewState(p Program) *State {
	return &State{program: p, root: p.View(), dirty: true}
}

func (s *State) Program() Program { return s.program }
func (s *State) Root() UIElement  { return s.root }

func (s *State) QueueEvent(ev Event) { s.queue = append(s.queue, ev) }
func (s *State) IsQueueEmpty() bool  { return len(s.queue) == 0 }

// Update dispatches the queued events and applies the messages they
// produced. It reports how many messages were applied.
func (s *State) Update(ctx *Context) int {
	s.layout(ctx)
	var shell Shell
	for _, ev := range s.queue {
		if m, ok := ev.(CursorMoved); ok {
			s.cursor = [2]float32{m.X, m.Y}
		}
		dispatch(s.root, ev, s.cursor, &shell)
	}
	s.queue = s.queue[:0]

	msgs := shell.Messages()
	for _, m := range msgs {
		s.program.Update(m)
	}
	if len(msgs) > 0 {
		s.root = s.program.View()
		s.dirty = true
		s.layout(ctx)
	}
	return len(msgs)
}

// Draw lays out the tree if needed and draws it.
func (s *State) Draw(ctx *Context) {
	s.layout(ctx)
	s.root.Draw(ctx)
}

// Interaction is the cursor icon the widget under the cursor asks for.
func (s *State) Interaction() CursorIcon {
	if icon, ok := interaction(s.root, s.cursor); ok {
		return icon
	}
	return CursorDefault
}

func (s *State) layout(ctx *Context) {
	if !s.dirty && s.viewport == ctx.Viewport {
		return
	}
	LayoutRoot(ctx, s.root)
	s.viewport = ctx.Viewport
	s.dirty = false
}

// LayoutRoot places root at the viewport origin and lays it out within it.
func LayoutRoot(ctx *Context, root UIElement) {
	root.Node().SetPos(ctx.Viewport[0], ctx.Viewport[1])
	root.Layout(ctx, Constraints{
		Min: [2]float32{0, 0},
		Max: [2]float32{ctx.Viewport[2], ctx.Viewport[3]},
	})
}

func dispatch(el UIElement, ev Event, cursor [2]float32, shell *Shell) {
	if h, ok := el.(EventHandler); ok {
		h.OnEvent(ev, cursor, shell)
	}
	for _, c := range el.Node().children {
		dispatch(c, ev, cursor, shell)
	}
}

func interaction(el UIElement, cursor [2]float32) (CursorIcon, bool) {
	for _, c := range el.Node().children {
		if icon, ok := interaction(c, cursor); ok {
			return icon, true
		}
	}
	if i, ok := el.(Interactor); ok {
		return i.Interaction(cursor)
	}
	return CursorDefault, false
}
