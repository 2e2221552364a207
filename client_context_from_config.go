package otclient

import (
	"errors"
	"fmt"

	"github.com/optistream/go-tracking-sdk/otcomponents"
	"github.com/optistream/go-tracking-sdk/subsystems"
)

func newClientContextFromConfig(
	tenantToken string,
	config Config,
) (subsystems.BasicClientContext, error) {
	basicContext := subsystems.BasicClientContext{TenantToken: tenantToken}

	loggingFactory := config.Logging
	if loggingFactory == nil {
		loggingFactory = otcomponents.Logging()
	}
	logging, err := loggingFactory.Build(basicContext)
	if err != nil {
		return subsystems.BasicClientContext{}, err
	}
	basicContext.Logging = logging

	httpFactory := config.HTTP
	if httpFactory == nil {
		httpFactory = otcomponents.HTTPConfiguration()
	}
	http, err := httpFactory.Build(basicContext)
	if err != nil {
		return subsystems.BasicClientContext{}, err
	}
	basicContext.HTTP = http

	return basicContext, nil
}

// buildComponent calls a configurer and treats a nil result as an error, since every component the
// client holds is used without further nil checks.
func buildComponent[T any](
	name string,
	configurer subsystems.ComponentConfigurer[T],
	clientContext subsystems.ClientContext,
) (T, error) {
	component, err := configurer.Build(clientContext)
	if err != nil {
		var empty T
		return empty, fmt.Errorf("unable to create %s: %w", name, err)
	}
	if interface{}(component) == nil {
		return component, errors.New(name + " configuration returned a nil component")
	}
	return component, nil
}
