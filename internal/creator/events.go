package creator

// Lifecycle event names published during a creation run.
const (
	// EventGitInit fires just before the repository is initialized.
	EventGitInit = "git-init"
	// EventPluginsInstall fires when generation finished and dependency
	// installation is about to start.
	EventPluginsInstall = "plugins-install"
)

// Event is a lifecycle notification for external observers (progress
// UI). It carries the event tag only.
type Event struct {
	Name string
}

// Subscribe registers an observer for lifecycle events. Observers are
// notified synchronously, in subscription order.
func (c *Creator) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	c.subscribers = append(c.subscribers, fn)
}

func (c *Creator) publish(e Event) {
	for _, fn := range c.subscribers {
		fn(e)
	}
}
