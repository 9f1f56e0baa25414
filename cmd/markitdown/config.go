package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// configFileUsed is the config file read by initConfig, if any.
var configFileUsed string

// envKeyReplacer maps pdf.backend to MARKITDOWN_PDF_BACKEND.
var envKeyReplacer = strings.NewReplacer(".", "_")

// initConfig layers a YAML config file and MARKITDOWN_* environment
// variables under the command line flags.
func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("markitdown")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "markitdown"))
		}
	}

	viper.SetEnvPrefix("MARKITDOWN")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	configFileUsed = ""
	if err := viper.ReadInConfig(); err == nil {
		configFileUsed = viper.ConfigFileUsed()
	}
}
