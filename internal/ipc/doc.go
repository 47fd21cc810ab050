// Package ipc implements JSON-RPC control of the daemon over a Unix
// domain socket. The CLI dials the socket to trigger submissions and
// inspect daemon state without touching the record file directly.
package ipc
