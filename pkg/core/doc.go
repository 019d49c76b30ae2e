// Package core runs the monomod pipeline:
//
//	discovery -> hierarchy -> filters -> evaluator -> aggregate
//
// Every entry point computes the module set fresh from the file tree. Errors
// from any stage abort the run; there is no partial output.
package core
