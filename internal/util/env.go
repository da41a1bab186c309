package util

import (
	"os"
	"strings"
)

// ReadEnvVar returns the trimmed value of the environment variable or an empty string if it is not set.
func ReadEnvVar(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// ReadEnvVarWithDefault returns the value of the environment variable or defaultValue if it is unset or blank.
func ReadEnvVarWithDefault(name, defaultValue string) string {
	if value := ReadEnvVar(name); value != "" {
		return value
	}

	return defaultValue
}

// ReadEnvList reads a comma separated environment variable. Entries are trimmed and empty entries are dropped,
// so an unset variable, "" and "," all result in an empty list.
func ReadEnvList(name string) []string {
	return SplitList(os.Getenv(name))
}

// SplitList splits a comma separated list the same way ReadEnvList does.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
