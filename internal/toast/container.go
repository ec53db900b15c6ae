package toast

import "sync"

// Container holds the live toasts in insertion order. It is append-only
// from the caller's point of view: toasts leave only when their lifecycle
// removes them. Duplicate messages are permitted and there is no size cap.
type Container interface {
	// Append adds a toast at the end of the display order.
	Append(t *Toast)

	// Remove detaches a toast. Removing a toast that is not present
	// is a no-op.
	Remove(t *Toast)

	// Toasts returns a snapshot of the current toasts in display order.
	Toasts() []*Toast
}

// Surface is the render target a Manager mounts its container on. It
// replaces the original implicit global document: tests and alternate
// frontends supply their own implementation.
type Surface interface {
	// CreateContainer builds the shared toast container. A Manager
	// calls this at most once.
	CreateContainer() Container
}

// Stack is the standard in-memory Container. It is safe for concurrent
// use; timer callbacks and the UI loop may touch it from different
// goroutines.
type Stack struct {
	mu     sync.Mutex
	toasts []*Toast
}

// NewStack creates an empty toast stack.
func NewStack() *Stack {
	return &Stack{}
}

// Append adds a toast at the end of the display order.
func (s *Stack) Append(t *Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, t)
}

// Remove detaches a toast from the stack.
func (s *Stack) Remove(t *Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.toasts {
		if existing == t {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns a snapshot of the current toasts in display order.
func (s *Stack) Toasts() []*Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Len returns the number of toasts currently in the stack.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// StackSurface is a Surface backed by a Stack. The UI keeps a reference
// to the surface and reads the mounted stack for rendering.
type StackSurface struct {
	mu    sync.Mutex
	stack *Stack
}

// NewStackSurface creates a surface with no container mounted yet.
func NewStackSurface() *StackSurface {
	return &StackSurface{}
}

// CreateContainer mounts and returns a fresh Stack.
func (s *StackSurface) CreateContainer() Container {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack = NewStack()
	return s.stack
}

// Stack returns the mounted stack, or nil if no container has been
// created yet.
func (s *StackSurface) Stack() *Stack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stack
}
