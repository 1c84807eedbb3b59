package buildlog

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Registry resolves build log channel names to loggers. Unknown names resolve to a child of the global logger
// carrying the channel name in the logger field; the child is created on first use.
type Registry struct {
	mu           sync.RWMutex
	destinations map[string]zerolog.Logger
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		destinations: map[string]zerolog.Logger{},
	}
}

var defaultRegistry = NewRegistry()

// Destination returns the logger for logName
func (r *Registry) Destination(logName string) zerolog.Logger {
	r.mu.RLock()
	logger, ok := r.destinations[logName]
	r.mu.RUnlock()
	if ok {
		return logger
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if logger, ok = r.destinations[logName]; ok {
		return logger
	}
	logger = log.Logger.With().Str("logger", logName).Logger()
	r.destinations[logName] = logger

	return logger
}

// Register overrides the logger for logName
func (r *Registry) Register(logName string, logger zerolog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.destinations[logName] = logger
}

// Unregister drops logName, the next use resolves it again
func (r *Registry) Unregister(logName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.destinations, logName)
}

// Registered returns whether logName currently has a logger, either registered or created on first use
func (r *Registry) Registered(logName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.destinations[logName]
	return ok
}

// Len returns the number of loggers held
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.destinations)
}

// RegisterDestination overrides the logger for logName in the process wide registry
func RegisterDestination(logName string, logger zerolog.Logger) {
	defaultRegistry.Register(logName, logger)
}

// UnregisterDestination drops logName from the process wide registry
func UnregisterDestination(logName string) {
	defaultRegistry.Unregister(logName)
}

// IsDestinationRegistered returns whether the process wide registry holds a logger for logName
func IsDestinationRegistered(logName string) bool {
	return defaultRegistry.Registered(logName)
}
