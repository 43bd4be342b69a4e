// Package domain defines the core business entities for kbchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentChunk: One indexed corpus file
//   - ScoredDocument: A chunk ranked against a query
//   - MemoryState: The persisted self name and fact list
//   - Classification: The intent detected for a raw query
//   - ChatReply: The reply and mode annotation for one request
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
