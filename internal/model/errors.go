package model

import "errors"

var (
	// ErrModelLoad marks an unloadable artifact: unknown architecture tag,
	// unreadable file or malformed bundle. Fatal at startup.
	ErrModelLoad = errors.New("model load failed")

	// ErrConfiguration marks an invalid ensemble or filter configuration.
	// Fatal at startup.
	ErrConfiguration = errors.New("invalid configuration")
)
