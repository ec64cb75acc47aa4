// Package loader registers features with the HTTP server.
//
// Each feature implements Feature and contributes its routes when loaded.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registered features in order and LoadAll loads the
// enabled ones.
package loader
