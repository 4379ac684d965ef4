// Package logtail reads the tail of the todo log file.
//
// The UI's log overlay calls Read to show the most recent records without
// loading the whole file: lines stream through a fixed-size ring buffer,
// so memory stays bounded by the requested line count. Each line is
// decoded from slog's JSON format into a Record; anything else is kept
// verbatim.
package logtail
