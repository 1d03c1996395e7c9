// Package match finds the closest known name for a misspelled one.
//
// It backs the "did you mean" hints attached to unknown option keys and
// unknown kernel kinds, and the lenient routine lookup of the aux command.
package match
