package update

import (
	"os"
	"strconv"
	"strings"
)

// RuntimeConfig is the process-level configuration, resolved once at startup
// from defaults and WEEKPLAN_* environment variables.
type RuntimeConfig struct {
	DesktopNotifications bool
	AlertBuffer          int
	DatabasePath         string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		AlertBuffer:          64,
		DatabasePath:         "weekplan.db",
	}
}

// RuntimeConfigFromEnv layers environment overrides onto base. Unset, blank,
// and unparseable variables leave the base value untouched.
func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := envBool("WEEKPLAN_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := envInt("WEEKPLAN_ALERT_BUFFER"); ok && v > 0 {
		cfg.AlertBuffer = v
	}
	if v, ok := envString("WEEKPLAN_DB"); ok {
		cfg.DatabasePath = v
	}
	return cfg
}

func envString(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

func envInt(name string) (int, bool) {
	raw, ok := envString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envBool(name string) (bool, bool) {
	raw, ok := envString(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	}
	return false, false
}
