package worker

// EventHandler processes one event payload.
type EventHandler func(data []byte) error

// Router dispatches events to their registered handlers by event name.
// Unrouted events are skipped.
type Router struct {
	handlers map[string][]EventHandler
}

func NewRouter(handlers map[string][]EventHandler) *Router {
	return &Router{
		handlers: handlers,
	}
}

func (r *Router) Handle(event string, data []byte) error {
	for _, handler := range r.handlers[event] {
		if err := handler(data); err != nil {
			return err
		}
	}
	return nil
}
