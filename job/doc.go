// Package job defines the abstract lifecycle state and the opaque
// handle that the torquedriver package exposes to its caller.
//
// Status is the fixed, provider-independent status enumeration the
// enclosing job-queue runtime observes. Handle is the value returned
// by a successful Submit and passed back into Status and Kill.
//
// Both are normally produced and consumed through the
// torquedriver.Driver API. New rebuilds a Handle from a known job id,
// as the torquedriverctl command does for its status and kill
// subcommands.
package job
