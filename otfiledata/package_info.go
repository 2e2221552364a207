// Package otfiledata allows the Optistream client to read tenant settings from files.
//
// To use file-based settings in your SDK configuration, call otfiledata.SettingsSource to obtain a
// configurable object that you will use as the configuration's Settings:
//
//	config := otclient.Config{
//	    Settings: otfiledata.SettingsSource().
//	        FilePaths("./settings/tracking.yaml"),
//	}
//	client, err := otclient.MakeCustomClient(myTenantToken, config)
//
// Use FilePaths to specify any number of file paths. The files are loaded when the client starts. If
// any file does not exist or cannot be parsed, the source logs an error and does not change the
// client's settings.
//
// Files may contain either JSON or YAML; if the first non-whitespace character is '{', the file is parsed
// as JSON, otherwise it is parsed as YAML. The file data should consist of an object with these
// properties:
//
// - "dispatchIntervalSeconds": the time between scheduled deliveries of queued events, in seconds.
// Zero or a negative number disables scheduled delivery.
//
// For example, in JSON:
//
//	{
//	  "dispatchIntervalSeconds": 10
//	}
//
// Or, in YAML:
//
//	dispatchIntervalSeconds: 10
//
// It is an error for more than one file to specify the same property.
//
// To apply changes to the files while the client is running, add a reloader such as
// otfilewatch.WatchFiles.
package otfiledata
