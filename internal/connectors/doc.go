// Package connectors provides the corpus sources kbchat indexes.
// The filesystem connector is the only source: it lists corpus files,
// writes the memory notes document and watches for changes.
package connectors
