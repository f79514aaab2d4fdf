package crossbuild

const (
	defaultOutputDirectoryConstant          = "~/share"
	outputDirectoryConfigurationKeyConstant = "output_directory"
	targetsConfigurationKeyConstant         = "targets"
	configurationKeySeparatorConstant       = "."
	targetTripleFieldConstant               = "triple"
	targetSuffixFieldConstant               = "suffix"
)

// Target pairs a rustc target triple with the suffix used in the artifact name.
type Target struct {
	Triple string `mapstructure:"triple"`
	Suffix string `mapstructure:"suffix"`
}

// CommandConfiguration captures persistent settings for the build-win command.
type CommandConfiguration struct {
	OutputDirectory string   `mapstructure:"output_directory"`
	Targets         []Target `mapstructure:"targets"`
}

// DefaultCommandConfiguration returns the 64-bit and 32-bit Windows GNU targets and ~/share.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		OutputDirectory: defaultOutputDirectoryConstant,
		Targets: []Target{
			{Triple: "x86_64-pc-windows-gnu", Suffix: "x86_64"},
			{Triple: "i686-pc-windows-gnu", Suffix: "x86_32"},
		},
	}
}

// DefaultConfigurationValues returns the Viper defaults for the command under configurationPrefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	targets := make([]map[string]any, 0, len(defaults.Targets))
	for _, target := range defaults.Targets {
		targets = append(targets, map[string]any{
			targetTripleFieldConstant: target.Triple,
			targetSuffixFieldConstant: target.Suffix,
		})
	}

	prefix := configurationPrefix + configurationKeySeparatorConstant
	return map[string]any{
		prefix + outputDirectoryConfigurationKeyConstant: defaults.OutputDirectory,
		prefix + targetsConfigurationKeyConstant:         targets,
	}
}
