package manifest

import "fmt"

const (
	profileKeyLinkTimeOptimizationConstant   = "lto"
	profileKeyStripSymbolsConstant           = "strip"
	profileKeyDebugInfoConstant              = "debug"
	profileKeyDebugAssertionsConstant        = "debug-assertions"
	profileKeyRuntimePathEmbeddingConstant   = "rpath"
	profileKeyIncrementalCompilationConstant = "incremental"
	profileKeyOptimizationLevelConstant      = "opt-level"
	profileKeyCodegenUnitsConstant           = "codegen-units"

	expectedOptimizationLevelConstant = 2
	expectedCodegenUnitsConstant      = 1

	symbolicOptimizationLevelTemplateConstant = "%q"
)

// OptimizationLevel holds the opt-level setting, which is either an integer or a symbolic string such as "s".
// Build values with IntegerOptimizationLevel or SymbolicOptimizationLevel.
type OptimizationLevel struct {
	Integer  int64
	Symbol   string
	symbolic bool
}

// IntegerOptimizationLevel builds an integer opt-level.
func IntegerOptimizationLevel(level int64) OptimizationLevel {
	return OptimizationLevel{Integer: level}
}

// SymbolicOptimizationLevel builds a string opt-level.
func SymbolicOptimizationLevel(symbol string) OptimizationLevel {
	return OptimizationLevel{Symbol: symbol, symbolic: true}
}

// IsSymbolic reports whether the level was written as a string.
func (level OptimizationLevel) IsSymbolic() bool {
	return level.symbolic
}

func (level OptimizationLevel) String() string {
	if level.symbolic {
		return fmt.Sprintf(symbolicOptimizationLevelTemplateConstant, level.Symbol)
	}
	return fmt.Sprint(level.Integer)
}

// ReleaseProfileFlags is the hygiene-relevant subset of [profile.release].
// A nil field means the key is absent or holds a value of an unexpected type.
type ReleaseProfileFlags struct {
	LinkTimeOptimization   *bool
	StripSymbols           *bool
	DebugInfo              *bool
	DebugAssertions        *bool
	RuntimePathEmbedding   *bool
	IncrementalCompilation *bool
	OptimizationLevel      *OptimizationLevel
	CodegenUnits           *int64
}

// Compliant reports whether every flag is present and equal to its expected value.
func (flags ReleaseProfileFlags) Compliant() bool {
	return len(flags.Deviations()) == 0
}

// Deviations lists the manifest keys that are absent or differ from the expected release settings,
// in a fixed key order.
func (flags ReleaseProfileFlags) Deviations() []string {
	var deviations []string

	booleanExpectations := []struct {
		key      string
		value    *bool
		expected bool
	}{
		{key: profileKeyLinkTimeOptimizationConstant, value: flags.LinkTimeOptimization, expected: true},
		{key: profileKeyStripSymbolsConstant, value: flags.StripSymbols, expected: true},
		{key: profileKeyDebugInfoConstant, value: flags.DebugInfo, expected: false},
		{key: profileKeyDebugAssertionsConstant, value: flags.DebugAssertions, expected: false},
		{key: profileKeyRuntimePathEmbeddingConstant, value: flags.RuntimePathEmbedding, expected: false},
		{key: profileKeyIncrementalCompilationConstant, value: flags.IncrementalCompilation, expected: false},
	}
	for _, expectation := range booleanExpectations {
		if expectation.value == nil || *expectation.value != expectation.expected {
			deviations = append(deviations, expectation.key)
		}
	}

	if flags.OptimizationLevel == nil || flags.OptimizationLevel.IsSymbolic() || flags.OptimizationLevel.Integer != expectedOptimizationLevelConstant {
		deviations = append(deviations, profileKeyOptimizationLevelConstant)
	}
	if flags.CodegenUnits == nil || *flags.CodegenUnits != expectedCodegenUnitsConstant {
		deviations = append(deviations, profileKeyCodegenUnitsConstant)
	}

	return deviations
}

func decodeReleaseProfile(values map[string]any) *ReleaseProfileFlags {
	if values == nil {
		return nil
	}

	flags := ReleaseProfileFlags{
		LinkTimeOptimization:   booleanValue(values, profileKeyLinkTimeOptimizationConstant),
		StripSymbols:           booleanValue(values, profileKeyStripSymbolsConstant),
		DebugInfo:              booleanValue(values, profileKeyDebugInfoConstant),
		DebugAssertions:        booleanValue(values, profileKeyDebugAssertionsConstant),
		RuntimePathEmbedding:   booleanValue(values, profileKeyRuntimePathEmbeddingConstant),
		IncrementalCompilation: booleanValue(values, profileKeyIncrementalCompilationConstant),
		CodegenUnits:           integerValue(values, profileKeyCodegenUnitsConstant),
	}

	switch level := values[profileKeyOptimizationLevelConstant].(type) {
	case int64:
		integerLevel := IntegerOptimizationLevel(level)
		flags.OptimizationLevel = &integerLevel
	case string:
		symbolicLevel := SymbolicOptimizationLevel(level)
		flags.OptimizationLevel = &symbolicLevel
	}

	return &flags
}

func booleanValue(values map[string]any, key string) *bool {
	value, ok := values[key].(bool)
	if !ok {
		return nil
	}
	return &value
}

func integerValue(values map[string]any, key string) *int64 {
	value, ok := values[key].(int64)
	if !ok {
		return nil
	}
	return &value
}
