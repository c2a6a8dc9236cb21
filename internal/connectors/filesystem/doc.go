// Package filesystem reads raw lineage records from a directory of flat files.
//
// Every non-hidden regular file in the directory is an input file. Each line
// holds one record of up to six comma-separated columns:
//
//	teacherName, address?, studentName, date?, ranking, studentNumber?
//
// Fields may be double-quoted to contain commas. Blank lines and lines
// starting with '#' are skipped. The same connector merges raw files and
// watches directories for changes with fsnotify.
package filesystem
