// Package normalisers provides the text transforms applied to lineage
// records between ingestion and rendering. Each sub-package is a set of
// pure, total functions over strings with no I/O.
//
// Sub-packages:
//   - field: casing, address abbreviation expansion, typesetting escapes
//     and name reordering
package normalisers
