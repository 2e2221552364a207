package sharedtest

import "os"

// ShouldSkipDatabaseTests returns true if the environment variable OT_SKIP_DATABASE_TESTS is non-empty.
// Each database integration also requires its own connection variable before its tests will run.
func ShouldSkipDatabaseTests() bool {
	return os.Getenv("OT_SKIP_DATABASE_TESTS") != ""
}
