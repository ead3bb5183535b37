package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tessgraph",
	Short: "Fetch, fold, and view TESS light curves and pixel cutouts",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.tessgraph.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path to the local sample store")

	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	viper.SetDefault("db", os.ExpandEnv("$HOME/tessgraph.db"))
	viper.SetDefault("exomast.base_url", "")
	viper.SetDefault("tesscut.base_url", "")
	viper.SetDefault("listen", "0.0.0.0:8000")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".tessgraph")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("TESSGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config:", viper.ConfigFileUsed())
	}
}
