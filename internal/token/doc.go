// Package token defines WGSL token classes.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Punctuation and operators are grouped into classes (Paren, Separator,
//     Operation, ...) with the concrete character kept in Token.Op; the parser
//     compares class + character, the same way for every class.
//   - '<' and '>' are only Paren when the lexer is asked for a generic paren or
//     when no longer operator matches; "<=", "<<" etc. are never split otherwise.
//   - Type names (f32, vec3, texture_2d, ...) are plain words; the parser owns them.
package token
