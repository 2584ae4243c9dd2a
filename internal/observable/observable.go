// Package observable provides containers that notify attached observers
// synchronously whenever their content changes.
//
// Notification is depth-first: a write returns only once every observer has
// returned, and writes issued by an observer are fully delivered before the
// outer notification loop resumes.
package observable

// Observer reacts to a change of a subject it is attached to.
// Update carries no payload: the observer re-reads whatever state it depends on.
type Observer interface {
	Update()
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func()

// Update calls f.
func (f ObserverFunc) Update() {
	f()
}

// Subject holds an ordered list of observers.
// The zero value is ready to use.
type Subject struct {
	observers []Observer
}

// Attach registers an observer. Observers are notified in attachment order.
func (s *Subject) Attach(o Observer) {
	s.observers = append(s.observers, o)
}

// AttachFunc registers a function as an observer.
func (s *Subject) AttachFunc(f func()) {
	s.Attach(ObserverFunc(f))
}

// Notify calls Update on every attached observer.
// Observers attached while a notification is running are first called on the next one.
func (s *Subject) Notify() {
	observers := s.observers[:len(s.observers):len(s.observers)]
	for _, o := range observers {
		o.Update()
	}
}

// ObserverCount returns the number of attached observers.
func (s *Subject) ObserverCount() int {
	return len(s.observers)
}

// Value is an observable scalar.
type Value[T any] struct {
	Subject
	value T
}

// NewValue creates an observable scalar holding v.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{value: v}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.value
}

// Set replaces the value and notifies, even when the new value equals the old one.
func (v *Value[T]) Set(value T) {
	v.value = value
	v.Notify()
}
