package flags

import "github.com/spf13/cobra"

const (
	// DefaultRootFlagName is the name of the repeatable root directory flag.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the root directory flag.
	DefaultRootFlagUsage = "Root directory to scan (repeatable, overrides configured roots)"
)

// RootFlagDefinition configures the root directory flag.
type RootFlagDefinition struct {
	Name       string
	Usage      string
	Persistent bool
}

// RootFlagValues stores root directory flag values.
type RootFlagValues struct {
	Roots []string
}

// BindRootFlags attaches the repeatable root directory flag to the command.
// Values are kept verbatim so paths containing commas survive.
func BindRootFlags(command *cobra.Command, definition RootFlagDefinition) *RootFlagValues {
	values := &RootFlagValues{}
	if command == nil {
		return values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DefaultRootFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultRootFlagUsage
	}

	targetSet := command.Flags()
	if definition.Persistent {
		targetSet = command.PersistentFlags()
	}
	if targetSet.Lookup(flagName) == nil {
		targetSet.StringArrayVar(&values.Roots, flagName, nil, flagUsage)
	}
	return values
}
