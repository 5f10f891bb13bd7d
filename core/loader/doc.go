// Package loader provides the feature loading system of the HTTP API.
//
// Each feature implements the Feature interface and registers its routes
// when loaded. Disabled features are skipped.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
