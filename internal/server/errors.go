package server

import "errors"

// ErrTransport marks a malformed or unreadable request body. Per-request,
// never fatal to the process.
var ErrTransport = errors.New("bad request")
