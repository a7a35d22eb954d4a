package pkg

import "os"

// Getenv returns the value of the environment variable key, or defaultValue
// when the variable is unset. An empty value counts as set.
func Getenv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
