// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RuleRepository: Custom rule collection persistence
//   - AreaRepository: Area list persistence
//   - TicketLog: Append-only processed-ticket log
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TicketSource: Reads batches of tickets. Without it, only single tickets can be classified.
//   - ReportExporter: Writes reports. Without it, only the summary is available.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
