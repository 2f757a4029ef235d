// Package async runs independent operations concurrently as a bounded task
// group.
//
// [Start] launches one goroutine per task on an errgroup and returns a
// [Group] that can be waited on or selected against a deadline. No worker
// outlives the tasks it was started for.
package async
