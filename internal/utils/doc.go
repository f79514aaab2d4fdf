// Package utils exposes the configuration and logging helpers shared by projctl commands.
//
// ConfigurationLoader layers embedded defaults, an optional configuration file and
// PROJCTL_* environment variables through Viper. LoggerFactory builds zap loggers
// for the configured level and format.
package utils
