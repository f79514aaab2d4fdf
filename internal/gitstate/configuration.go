package gitstate

import "github.com/temirov/projctl/internal/divergence"

const (
	primaryUpstreamConfigurationKeyConstant   = "primary_upstream"
	secondaryUpstreamConfigurationKeyConstant = "secondary_upstream"
	workersConfigurationKeyConstant           = "workers"
	configurationKeySeparatorConstant         = "."
)

// CommandConfiguration captures persistent settings for the git state command.
type CommandConfiguration struct {
	PrimaryUpstream   string `mapstructure:"primary_upstream"`
	SecondaryUpstream string `mapstructure:"secondary_upstream"`
	Workers           int    `mapstructure:"workers"`
}

// DefaultCommandConfiguration returns baseline configuration values for the git state command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		PrimaryUpstream:   divergence.DefaultPrimaryUpstreamConstant,
		SecondaryUpstream: divergence.DefaultSecondaryUpstreamConstant,
		Workers:           divergence.DefaultWorkerCountConstant,
	}
}

// DefaultConfigurationValues returns the Viper defaults for the command under configurationPrefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefix := configurationPrefix + configurationKeySeparatorConstant
	return map[string]any{
		prefix + primaryUpstreamConfigurationKeyConstant:   defaults.PrimaryUpstream,
		prefix + secondaryUpstreamConfigurationKeyConstant: defaults.SecondaryUpstream,
		prefix + workersConfigurationKeyConstant:           defaults.Workers,
	}
}

func (configuration CommandConfiguration) inspectorOptions() divergence.Options {
	return divergence.Options{
		PrimaryUpstream:   configuration.PrimaryUpstream,
		SecondaryUpstream: configuration.SecondaryUpstream,
		Workers:           configuration.Workers,
	}
}
