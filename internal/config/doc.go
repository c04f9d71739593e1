// Package config manages user-level settings stored at ~/.kff/config.yaml.
// Values resolve in viper order (environment, config file, defaults) and are
// handed to the rest of the program as an explicit Settings snapshot.
package config
