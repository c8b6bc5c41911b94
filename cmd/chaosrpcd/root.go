package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "chaosrpcd",
	Short: "Demo host/caller for the Calculator example interface",
	Long: `chaosrpcd is a small demonstration binary built on top of the
chaosrpc module. It either hosts the Calculator example interface over
a framed TCP listener ("serve"), or dials one and issues a handful of
calls against it ("call").`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./chaosrpcd.yaml)")
	rootCmd.PersistentFlags().String("addr", "127.0.0.1:7070", "address to listen on or dial")
	rootCmd.PersistentFlags().String("log-level", "info", "logrus level: debug, info, warn, error")
	viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(callCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chaosrpcd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("CHAOSRPCD")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("chaosrpcd: reading config:", err)
		}
	}
}
