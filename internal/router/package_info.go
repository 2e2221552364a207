// Package router forwards control-plane operations to the client components that accept them.
//
// This package is internal and its types are not visible to applications.
package router
