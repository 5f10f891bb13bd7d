// Package utils provides small filesystem helpers shared by the lifecycle
// components.
//
// All persistent writes in the manager go through WriteFileAtomic or
// WriteAtomic so a crash mid-write never replaces a previous good file
// with a partial one.
package utils
