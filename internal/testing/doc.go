// Package testing provides shared mocks, fixtures and builders for tests
// of the remote adapter and the command layer.
//
//   - MockDirector / MockWorkspaces: testify mocks of the platform APIs
//   - DirectorFixture: preset director expectations for common lab states
//   - DesiredStateBuilder: immutable builder for reconcile.DesiredState
//
// Usage:
//
//	desired := testing.NewDesiredStateBuilder().
//	    WithItems("A", "B").
//	    WithPublicIP("10.0.0.5").
//	    Build()
package testing
