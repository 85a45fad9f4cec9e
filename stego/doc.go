// Package stego hides short plaintext messages inside ordinary text.
//
// A message is written as a run of invisible carrier characters appended to a
// visible host string. The run renders with zero width, so the composite text
// looks identical to the host, but FindAll recovers every message together
// with its location and Strip removes them again.
//
// The wire format is fixed:
//
//   - each message character is one 8-bit group (BitWidth), most significant
//     bit first, so messages are limited to U+0000..U+00FF;
//   - each group is written as four carrier characters, two bits apiece, drawn
//     from the alphabet U+2061..U+2064 (the invisible math operators).
//
// Runs are self-delimiting: carrier characters never appear in ordinary
// visible text, so no length prefix or sentinel is needed.
//
// The scheme hides presence, not content. It is not encryption.
//
// All functions are pure and safe for concurrent use.
package stego
