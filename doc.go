// Package evlog owns event logging and dispatch.
//
// Ownership boundary:
// - logger construction, mute/debug gating, prefix composition
// - proxy delegation chains and bound pairs
// - destination fan-out (console, file, syslog, memory)
// - environment and TOML configuration
//
// Line rendering lives in logfmt; this package decides whether a line
// is emitted and where it goes.
package evlog
