// Package tasks waits for asynchronous remote operations to finish.
//
// A [Tracker] polls every [Handle] concurrently, one worker per handle, at
// a fixed interval until each reaches a terminal [Status] or the caller's
// deadline passes. Workers never outlive a single AwaitAll call.
package tasks
