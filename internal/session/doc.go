// Package session owns the working charge set of an interactive run.
//
// A [Session] applies the two control inputs (charge 0 magnitude in nC and
// x position in m) to its charge set, re-evaluates the whole grid and hands
// the result to every subscribed [Consumer] before returning it. Nothing from
// a previous evaluation is reused.
//
// Sessions are not safe for concurrent use; the UI layer drives them from a
// single goroutine.
package session
