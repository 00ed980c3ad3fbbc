// Package mmfile provides platform-specific helpers for mapping strip files
// and for obtaining raw memory outside the Go heap.
//
// On unix platforms both file and anonymous mappings go through
// golang.org/x/sys/unix. Other platforms fall back to heap memory.
package mmfile
