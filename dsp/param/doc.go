// Package param provides a lock-free store of named audio parameters.
//
// Each [Parameter] publishes its raw value through an atomic word and maps it
// onto [0, 1] via a skewed, stepped [Range]. Writers notify registered
// [Listener]s; readers on the audio goroutine only perform atomic loads.
package param
