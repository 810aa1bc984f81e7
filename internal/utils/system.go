package utils

import (
	"os"
	"os/user"
	"strings"
)

// CurrentOperator identifies who is running the process as user@host for
// audit entries. Either half falls back to "unknown".
func CurrentOperator() string {
	name := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
		// Windows reports DOMAIN\user.
		if i := strings.LastIndex(name, `\`); i >= 0 {
			name = name[i+1:]
		}
	}

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return name + "@" + host
}
