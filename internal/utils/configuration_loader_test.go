package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/projctl/internal/utils"
)

const (
	testEnvironmentPrefixConstant     = "TESTPROJCTL"
	testLogLevelKeyConstant           = "common.log_level"
	testDefaultLogLevelConstant       = "info"
	testConfigFileNameConstant        = "config.yaml"
	testConfigContentTemplateConstant = "common:\n  log_level: %s\nroots:\n  - %s\n"
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
	Roots  []string                   `mapstructure:"roots"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		fileLogLevel        string
		environmentLogLevel string
		environmentRoots    string
		expectedLogLevel    string
		expectedRoots       []string
	}{
		{
			name:             "embedded_overrides_defaults",
			embeddedLogLevel: "debug",
			expectedLogLevel: "debug",
			expectedRoots:    []string{"~/embedded"},
		},
		{
			name:             "defaults_apply_without_embedded_value",
			expectedLogLevel: testDefaultLogLevelConstant,
			expectedRoots:    []string{"~/embedded"},
		},
		{
			name:             "file_overrides_embedded",
			embeddedLogLevel: "debug",
			fileLogLevel:     "warn",
			expectedLogLevel: "warn",
			expectedRoots:    []string{"/srv/file"},
		},
		{
			name:                "environment_overrides_file",
			embeddedLogLevel:    "debug",
			fileLogLevel:        "warn",
			environmentLogLevel: "error",
			environmentRoots:    "/srv/one,/srv/two",
			expectedLogLevel:    "error",
			expectedRoots:       []string{"/srv/one", "/srv/two"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			temporaryDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = filepath.Join(temporaryDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileLogLevel, "/srv/file")
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}
			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(testEnvironmentPrefixConstant+"_COMMON_LOG_LEVEL", testCase.environmentLogLevel)
			}
			if len(testCase.environmentRoots) > 0 {
				testInstance.Setenv(testEnvironmentPrefixConstant+"_ROOTS", testCase.environmentRoots)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{temporaryDirectory})
			embeddedContent := "roots:\n  - ~/embedded\n"
			if len(testCase.embeddedLogLevel) > 0 {
				embeddedContent = fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedLogLevel, "~/embedded")
			}
			configurationLoader.SetEmbeddedConfiguration([]byte(embeddedContent))

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedConfiguration)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedRoots, loadedConfiguration.Roots)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderFindsFileInSearchPaths(testInstance *testing.T) {
	firstDirectory := testInstance.TempDir()
	secondDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(secondDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(fmt.Sprintf(testConfigContentTemplateConstant, "debug", "/srv/found")), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{firstDirectory, secondDirectory})

	loadedConfiguration := configurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
	require.Equal(testInstance, []string{"/srv/found"}, loadedConfiguration.Roots)
}

func TestConfigurationLoaderRejectsMalformedEmbeddedConfiguration(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
	configurationLoader.SetEmbeddedConfiguration([]byte("common: [unterminated"))

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)
	require.ErrorContains(testInstance, loadError, "embedded configuration")
}
