package config

const (
	// Prefix of all environment configurations
	EnvConfigPrefix = "SIGWATCH_"
	// Environment variable with the path of the config file
	ConfigFilePath = "SIGWATCH_CONFIG_FILE"
)
