// Package logtail reads the end of the jukebox log file for the terminal
// UI's log view.
//
// Tail keeps a ring buffer of the last n lines, so memory stays bounded no
// matter how large the file has grown. Parse splits a line written by the
// standard logger into timestamp and message so the view can style them
// separately:
//
//	lines, err := logtail.Tail(path, 200)
//	for _, line := range lines {
//		e := logtail.Parse(line, "jukebox")
//		...
//	}
package logtail
