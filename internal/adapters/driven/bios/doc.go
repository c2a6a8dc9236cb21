// Package bios holds the teacher bio sources.
//
// Subpackages:
//   - textfile: one labelled text file per teacher, also used to create bios
//   - yamlfile: an optional bios.yaml bundle keyed by teacher name
package bios
