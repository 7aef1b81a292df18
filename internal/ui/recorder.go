package ui

import "sync"

// Recorded is one captured Notifier call.
type Recorded struct {
	Message  string
	Severity Severity
	Blocking bool
}

// Recorder is a Notifier that captures calls for assertions in tests.
type Recorder struct {
	mu    sync.Mutex
	Calls []Recorded
}

func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Recorded{Message: message, Severity: severity})
}

func (r *Recorder) PromptBlockingMessage(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Recorded{Message: text, Blocking: true})
}
