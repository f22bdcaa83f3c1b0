package pdt

import "log/slog"

// DiagKind classifies a non-fatal ingestion or lookup problem.
type DiagKind string

const (
	// DiagMalformedLine: a line does not tokenize as its declared type.
	DiagMalformedLine DiagKind = "malformed_line"
	// DiagUnknownLineType: unrecognized leading token. Adapters skip these
	// silently; the kind exists for adapters that choose to count them.
	DiagUnknownLineType DiagKind = "unknown_line_type"
	// DiagUndefinedReference: a construct names something never defined.
	DiagUndefinedReference DiagKind = "undefined_reference"
	// DiagInvalidIdentifier: a staging record was dropped at publish.
	DiagInvalidIdentifier DiagKind = "invalid_identifier"
	// DiagDuplicateIdentifier: a repeated definition overwrote fields.
	DiagDuplicateIdentifier DiagKind = "duplicate_identifier"
	// DiagResolutionDeclined: the resolver produced nothing.
	DiagResolutionDeclined DiagKind = "resolution_declined"
)

// DiagnosticSink receives human-readable warnings. *slog.Logger satisfies it.
type DiagnosticSink interface {
	Warn(msg string, args ...any)
}

var _ DiagnosticSink = (*slog.Logger)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
