// Package markup implements the directive-stripping engine that turns marked
// up boilerplate into clean output.
//
// # Model
//
// Boilerplate sources carry scaffolding-only annotations embedded in ordinary
// comments. Four removal directives are recognized, each a literal marker
// inside a whole-line comment:
//
//	@test remove-current-line
//	@test remove-next-line
//	@test remove-block-start [tag]
//	@test remove-block-end [tag]
//
// The marker set is a fixed protocol between boilerplate authors and the
// engine; new kinds are added here, not through configuration.
//
// Two independent passes operate on a document:
//
//   - ApplyDirectives interprets the four directives in a single forward
//     walk, deleting the marked lines.
//   - StripComments deletes every comment span (line-comment suffixes and
//     block comments, including multi-line ones) while preserving the line
//     count.
//
// When both passes are requested, ApplyDirectives must run first: a directive
// wrapped in a block comment has to be recognized as a directive before
// generic comment stripping would eat it as plain comment text.
//
// # Limitations
//
// The engine is line- and token-naive. It does not track string literals, so
// a comment-token lookalike inside a string is treated as a real comment
// opener. Input is machine-generated boilerplate with controlled content,
// which keeps this acceptable. Nested removal blocks are not supported: one
// block may be open at a time per pass.
//
// Both passes are pure functions of (text, syntax id). All file IO belongs to
// the callers.
package markup
