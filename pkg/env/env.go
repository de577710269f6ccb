// Package env keeps names of environment variables with special significance to
// dpm.
package env

// Environment variables with special significance to dpm.
const (
	DPM_CONFIG      = "DPM_CONFIG"
	DPM_DB          = "DPM_DB"
	HOME            = "HOME"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_DATA_HOME   = "XDG_DATA_HOME"
)
