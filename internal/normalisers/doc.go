// Package normalisers provides implementations of the Normaliser interface
// for the corpus file formats. Each normaliser knows how to extract plain
// prose from a specific MIME type.
//
// Normalisers are registered with the Registry at startup.
package normalisers
