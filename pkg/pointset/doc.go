// Package pointset reads and writes planar point sets and search records.
//
// # Point Files
//
// Two formats are accepted. JSON files hold a single object:
//
//	{"points": [[0, 0], [1, 0], [0.5, 0.8660254037844386]]}
//
// Plain text files hold one point per line, coordinates separated by
// whitespace or a comma. Blank lines and everything after '#' are ignored:
//
//	# unit triangle
//	0 0
//	1, 0
//	0.5 0.8660254037844386
//
// [ReadPoints] detects the format from the first non-space byte. Coordinates
// are plain decimals; they are not validated here beyond parsing, since
// [udg.Build] rejects non-finite values.
//
// # Records
//
// [WriteRecords] encodes ranked search records as an indented JSON array.
// The encoding is deterministic, so two runs with the same inputs and seed
// produce byte-identical files.
//
// [udg.Build]: github.com/matzehuels/chromaplane/pkg/udg.Build
package pointset
