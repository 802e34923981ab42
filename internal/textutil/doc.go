// Package textutil sanitizes user-provided names before they become path
// segments on disk.
package textutil
