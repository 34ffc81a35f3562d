// Package session owns client-side authentication state: the signed-in
// user, the bearer token, and their durable persistence.
//
// Exactly one Store exists per running process; every collaborator that
// needs the current identity or token reads it from here. The user and
// token are always set and cleared together - a Store never holds one
// without the other, except transiently before CheckAuth has run.
//
// Register and Login never return errors across the package boundary.
// Both transport failures and backend rejections collapse into a Result
// carrying a human-readable message, so callers branch on Result.OK
// instead of unwrapping error chains.
package session
