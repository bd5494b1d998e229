// Package domain defines the core business entities for triage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Rule: A user-authored keyword-to-classification mapping
//   - Area: A reference entry used to validate a ticket's declared area
//   - Ticket: A support request as received at the boundary
//   - ClassificationResult: The outcome of the keyword classifier
//   - InferenceResult: The outcome of the category scorer
//   - ProcessedTicket: A ticket and its result as stored in the ticket log
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
