// Package web serves the jukebox control page over HTTP with chi.
//
// GET / renders the page from the current state.Store snapshot. Every
// control on the page is a small form that POSTs to an action route and is
// answered with a redirect back to /, and the page reloads itself every few
// seconds so the poller's updates show up. GET /state.json returns the now
// playing fields and queue for scripts.
package web
