// Package services implements the driving port interfaces.
// Services contain the triage logic (rule and area management,
// keyword classification, scoring sessions and reporting) and
// orchestrate calls to driven ports (adapters).
//
// Services never touch the filesystem directly; persistence goes
// through the repositories in ports/driven.
package services
