// Package logging configures the process-wide slog logger.
//
// Two handler formats exist: a human-oriented console handler used by
// default and a JSON handler for machine consumption. Attr helpers
// mirror the slog constructors so call sites stay terse, and NewNop
// gives tests a logger that discards everything.
package logging
