package testutil

import "sync"

// Warning is one recorded diagnostic.
type Warning struct {
	Msg  string
	Kind string
	Args []any
}

// RecordingSink collects diagnostics for assertions. It satisfies
// pdt.DiagnosticSink.
type RecordingSink struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warn records a diagnostic. A "kind" key in args is lifted into Kind.
func (s *RecordingSink) Warn(msg string, args ...any) {
	w := Warning{Msg: msg, Args: args}
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok && k == "kind" {
			w.Kind, _ = args[i+1].(string)
		}
	}
	s.mu.Lock()
	s.warnings = append(s.warnings, w)
	s.mu.Unlock()
}

// Warnings returns a copy of the recorded diagnostics.
func (s *RecordingSink) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Warning(nil), s.warnings...)
}

// Count returns how many diagnostics of kind were recorded.
func (s *RecordingSink) Count(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, w := range s.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of recorded diagnostics.
func (s *RecordingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.warnings)
}
