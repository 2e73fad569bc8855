package worker

// EventSubscriber attaches its handlers to the event dispatcher.
type EventSubscriber interface {
	RegisterHandlers()
}

// StartEventWorkers registers the handlers of every subscriber. Nil entries
// are skipped.
func StartEventWorkers(subscribers ...EventSubscriber) {
	for _, s := range subscribers {
		if s == nil {
			continue
		}
		s.RegisterHandlers()
	}
}
