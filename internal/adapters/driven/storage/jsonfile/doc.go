// Package jsonfile persists rules, areas and the processed-ticket log as
// human-editable JSON documents.
//
// Each document is a single object with one top-level array
// ("custom_rules", "areas" or "processed_tickets"). Files are written with
// two-space indentation and unescaped UTF-8, and are read with
// github.com/tidwall/jsonc so hand edits may carry comments and trailing
// commas. Writes go to a temporary file that is renamed over the target.
package jsonfile
