// Package diag defines the diagnostic model shared by the lexer, parser,
// driver and CLI.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX1003, SYN2030, ...), a short Message, the Primary span and
// optional Notes pointing at secondary spans ("previous definition here").
//
// Producers emit through a Reporter; BagReporter aggregates into a Bag that
// supports sorting and deduplication. The parser aborts on its first error and
// returns it as a value; only soft findings (unknown diagnostic rule names,
// non-NFC identifiers) flow through a Reporter during parsing.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
