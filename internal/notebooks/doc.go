// Package notebooks manages the encrypted notebook corpus: transcribed
// pages of handwritten notebooks stored one file per page as
//
//	<identifier>___Page<number>.txt.enc
//
// A Store loads every page in its directory into an in-memory corpus that is
// rendered into the model's context. Unreadable pages are skipped with a
// warning so a single bad file never hides the rest of the corpus.
//
// Import and WritePage are the write side, used by the CLI to encrypt raw
// transcriptions into the notebook directory.
package notebooks
