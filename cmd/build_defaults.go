package cmd

import (
	"fmt"
	"strings"
)

// Build-time defaults, overridable with -ldflags "-X backend/cmd.buildTimeDefaultUser=..."
var (
	// bootstrap admin credentials, "email:password", empty to disable
	buildTimeDefaultUser = "admin@localhost.local:password"

	buildTimeLLMProvider = "openrouter"
)

func GetBuildTimeDefaultUser() string {
	return buildTimeDefaultUser
}

func GetBuildTimeLLMProvider() string {
	return buildTimeLLMProvider
}

// ParseCredentials splits "email:password". The password may contain colons.
func ParseCredentials(raw string) (string, string, error) {
	email, password, ok := strings.Cut(raw, ":")
	if !ok || email == "" || password == "" {
		return "", "", fmt.Errorf("credentials must look like email:password")
	}
	return email, password, nil
}
