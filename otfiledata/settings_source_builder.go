package otfiledata

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

// ReloaderFactory is a function type used with SettingsSourceBuilder.Reloader, to specify a mechanism for
// detecting when settings files should be reloaded. Its standard implementation is in the otfilewatch
// package.
type ReloaderFactory func(paths []string, loggers ldlog.Loggers, reload func(), closeCh <-chan struct{}) error

// SettingsSourceBuilder is a builder for configuring the file-based settings source.
//
// Obtain an instance of this type by calling SettingsSource(). After calling its methods to specify any
// desired custom settings, store it in the SDK configuration's Settings field.
//
// Builder calls can be chained, for example:
//
//	config.Settings = otfiledata.SettingsSource().FilePaths("file1").FilePaths("file2")
//
// You do not need to call the builder's Build method yourself; that will be done by the SDK.
type SettingsSourceBuilder struct {
	filePaths       []string
	reloaderFactory ReloaderFactory
}

// SettingsSource returns a configurable builder for a file-based settings source.
func SettingsSource() *SettingsSourceBuilder {
	return &SettingsSourceBuilder{}
}

// FilePaths specifies the input files. The paths may be any number of absolute or relative file paths.
func (b *SettingsSourceBuilder) FilePaths(paths ...string) *SettingsSourceBuilder {
	b.filePaths = append(b.filePaths, paths...)
	return b
}

// Reloader specifies a mechanism for reloading settings files.
//
// It is normally used with the otfilewatch package, as follows:
//
//	config := otclient.Config{
//	    Settings: otfiledata.SettingsSource().
//	        FilePaths(filePaths...).
//	        Reloader(otfilewatch.WatchFiles),
//	}
func (b *SettingsSourceBuilder) Reloader(reloaderFactory ReloaderFactory) *SettingsSourceBuilder {
	b.reloaderFactory = reloaderFactory
	return b
}

// Build is called internally by the SDK.
func (b *SettingsSourceBuilder) Build(context subsystems.ClientContext) (subsystems.SettingsSource, error) {
	return newFileSettingsSourceImpl(context, b.filePaths, b.reloaderFactory)
}
