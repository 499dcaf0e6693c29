package antialias

// Observer is notified after every successful strategy change so bound displays can re-read
// the controller's current strategy.
type Observer interface {
	Refresh()
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func()

// Refresh calls f.
func (f ObserverFunc) Refresh() {
	f()
}
