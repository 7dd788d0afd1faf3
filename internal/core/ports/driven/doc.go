// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Connector: Fetches raw documents from a corpus source
//   - Normaliser: Transforms raw documents into documents
//   - PostProcessor: Rewrites document content (header/footer/quote removal)
//   - CorpusStore: Corpus cache
//   - ConfigStore: Application configuration
//   - Tokenizer, Vectorizer, Classifier: The learning pipeline
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
