// Package file provides a TOML-backed implementation of driven.ConfigStore.
//
// Settings live in config.toml inside the configuration directory
// (~/.triage by default). Dotted keys map onto TOML tables, so the key
// "storage.ticket_log" is stored as ticket_log in the [storage] table.
package file
