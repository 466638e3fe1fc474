package config

// Key defines a configuration key with its metadata.
type Key struct {
	Name        string
	Description string
	Hidden      bool // hidden keys never appear in listings
}

// Keys defines all configuration keys. Order determines display order.
var Keys = []Key{
	{
		Name:        "api_address",
		Description: "Address of the remote gateway",
	},
	{
		Name:        "username",
		Description: "User name used at login",
	},
	{
		Name:        "password",
		Description: "Password used at login",
		Hidden:      true,
	},
	{
		Name:        "access_token",
		Description: "Session token obtained at login",
		Hidden:      true,
	},
	{
		Name:        "server_version",
		Description: "Gateway version reported at login",
		Hidden:      true,
	},
	{
		Name:        "enable_log",
		Description: "Enable logging to file (true/false)",
	},
}

// Known reports whether the key name is a defined configuration key.
func Known(name string) bool {
	for _, k := range Keys {
		if k.Name == name {
			return true
		}
	}
	return false
}
