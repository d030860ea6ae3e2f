// Package colorize implements the restartable per-line colorizer at the
// heart of tinge.
//
// Invariants:
//   - Line is pure: (prior state, line, mode tables) fully determine the
//     emitted spans and the next state. No global mutable state.
//   - At most one construct is open in a State at a time; the
//     string-continuation and tag-continuation carries clear as soon as
//     the construct closes.
//   - One forward pass per line, no re-scanning of earlier lines. A host
//     recolors after an edit by rescanning forward from the last state it
//     trusts, nothing more.
//   - The scanner never fails: unterminated constructs degrade to a
//     "still open" carry, which is a valid, stable state.
//
// Column positions in emitted spans count code points, matching the
// []rune input, not bytes.
package colorize
