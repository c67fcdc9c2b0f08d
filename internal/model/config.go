package model

// Well-known feature-flag keys stored in site_config.  Values are
// conventionally "Y"/"N".
const (
	ConfigMessageDisable  = "message_disable"
	ConfigCommentsDisable = "comments_disable"
)

// ConfigEntry is one row of the site_config table.  At most one row
// exists per key.
type ConfigEntry struct {
	Key   string // site_config.config_key
	Value string // site_config.config_value
}
