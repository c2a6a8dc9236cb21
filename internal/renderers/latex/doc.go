// Package latex renders the aggregated lineage model as LaTeX book source.
//
// The output is a book with a fixed license and introduction, one chapter per
// teacher, one section per address and one table per section. Every student
// name is also emitted as a makeindex directive so the build can produce a
// back-of-book index.
//
// Free text is escaped at the point of emission. Rendering is deterministic:
// the generation timestamp only appears in the preamble.
package latex
