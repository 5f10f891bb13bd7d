// Package version persists the locally installed server version.
//
// The manifest is a single line of text with a fixed prefix:
//
//	Current BeamMP-Server Version: v3.4.1
//
// ReadLocal strips the prefix. Any failure to read the manifest degrades to
// "unknown" rather than an error, so update logic can always fall back to a
// fresh install. The format must stay stable because existing installations
// are read by prefix stripping.
package version
