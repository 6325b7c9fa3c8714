package testutil

import "os"

// Setenv sets the value of an environment variable for the duration of a test.
// It returns value.
func Setenv(c Cleanuper, name, value string) string {
	old, existed := os.LookupEnv(name)
	os.Setenv(name, value)
	c.Cleanup(func() {
		if existed {
			os.Setenv(name, old)
		} else {
			os.Unsetenv(name)
		}
	})
	return value
}
