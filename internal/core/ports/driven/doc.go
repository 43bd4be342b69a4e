// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Corpus: Lists and reads corpus files
//   - NotesWriter: Writes the memory notes document into the corpus
//   - Normaliser: Converts a raw file into plain prose
//   - NormaliserRegistry: Selects the normaliser for a file
//   - MemoryStore: Memory state persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Generative model. Without it, the general fallback fails with ErrLLMUnavailable.
//   - CorpusWatcher: Change notifications. Without it, rebuilds are explicit only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
