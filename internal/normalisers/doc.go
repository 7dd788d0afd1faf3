// Package normalisers provides implementations of the Normaliser interface
// for the post formats found in newsgroup archives. Each normaliser knows how
// to turn a specific MIME type into a document.
//
// Normalisers are registered with the Registry at startup.
package normalisers
