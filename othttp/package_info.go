// Package othttp provides internal helper functions for custom HTTP configuration.
//
// Applications will not normally need to use this package. Use otcomponents.HTTPConfiguration() to
// configure the SDK's HTTP behavior.
package othttp
