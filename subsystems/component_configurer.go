package subsystems

// ComponentConfigurer is a common interface for component factories and configuration builders, such
// as the ones in otcomponents or the queue store integrations.
//
// Applications only need to implement this interface when they supply a custom component.
type ComponentConfigurer[T any] interface {
	// Build is called by the client to create an implementation instance. Applications should not
	// need to call this method.
	Build(clientContext ClientContext) (T, error)
}
