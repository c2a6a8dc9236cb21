// Package connectors provides the input sources of the lineage pipeline.
// Each connector knows how to list and read raw lineage records from one
// kind of storage and how to watch it for changes.
package connectors
