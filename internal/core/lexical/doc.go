// Package lexical implements the text pipeline shared by indexing and querying:
// normalisation, tokenisation, TF-IDF weighting, scoring and snippet extraction.
//
// Every function here is pure. The same Normalize must run on corpus text and
// on queries, otherwise substring overlap silently stops matching.
package lexical
