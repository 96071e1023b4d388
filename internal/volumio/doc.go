// Package volumio provides an HTTP client for a Volumio-style media player API.
//
// # Overview
//
// The player exposes a small REST API under a fixed root (default /api/v1).
// This package wraps it with typed requests and responses and funnels every
// call through a single Request method that validates the status code,
// decodes JSON and classifies failures.
//
// # Architecture
//
//   - client.go: Client, the API interface and typed endpoint helpers
//   - errors.go: NetworkError, HTTPStatusError and ParseError
//   - types.go: payload structs, command constants and the enqueue heuristic
//
// # Client Usage
//
//	client, err := volumio.NewClient("volumio.local", volumio.ClientOptions{})
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	state, err := client.GetState(ctx)
//	if err != nil {
//		log.Printf("state fetch failed: %v", err)
//	}
//
// # API Endpoints
//
//	GET  /listplaylists                    ordered playlist names
//	GET  /browse[?uri=]                    sources, or the contents of uri
//	GET  /commands/?cmd=playplaylist&name= play a playlist
//	GET  /commands/?cmd=<name>             play, pause, stop, prev, next
//	GET  /commands/?cmd=volume&volume=N    set volume
//	POST /replaceAndPlay                   {list:[...], index:0}
//	GET  /getState                         now-playing snapshot
//	GET  /getQueue                         {queue:[...]}
//
// # Error Handling
//
// Failures are logged with the endpoint and a per-request id (also sent as
// the X-Request-Id header) and returned to the caller. Use errors.As to
// distinguish them:
//
//   - *NetworkError: the request never produced a response
//   - *HTTPStatusError: the player answered with a non-2xx status
//   - *ParseError: the body was not valid JSON for the expected payload
//
// Nothing is retried. Timeouts are left to the transport unless
// ClientOptions.Timeout is set.
//
// # Enqueue Heuristic
//
// NewEnqueueItem decides how the player should treat a URI: anything starting
// with "http" is submitted as a web radio stream, everything else as a local
// MPD song.
package volumio
