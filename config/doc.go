// Package config loads webclient configuration from YAML files and the
// environment.
//
// Files are read with Viper; a .env file can be loaded first via godotenv.
// When an env prefix is set, matching environment variables override file
// values using underscore-separated paths (e.g. WEBCLIENT_REALM_PRINCIPAL
// overrides realm.principal).
//
//	var cfg webclient.Config
//	err := config.Load("config.yml", &cfg, config.WithEnvPrefix("WEBCLIENT"))
package config
