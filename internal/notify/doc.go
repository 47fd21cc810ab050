// Package notify delivers submission outcomes via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic
// configured in config.toml and degrades to a no-op when no topic is
// set. The engine and daemon depend only on the Service interface, so
// headless tests run without any notification transport.
package notify
