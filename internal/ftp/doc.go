// Package ftp implements the concurrent FTP server runtime: wire framing,
// the session registry, data-channel negotiation, the worker pool, command
// parsing, command handlers, and the readiness-driven reactor that ties
// them together.
package ftp
