// Package internal contains SDK implementation details that are shared between packages,
// but are not exposed to application code. The dispatch, memqueue and router subpackages contain
// the components behind the client's event delivery.
package internal
