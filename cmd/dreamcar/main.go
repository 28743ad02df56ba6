package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dreamgarage/dreamcar/config"
	srv "github.com/dreamgarage/dreamcar/internal/server"
)

func main() {
	root := &cobra.Command{Use: "dreamcar"}
	root.AddCommand(serveCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCMD() *cobra.Command {
	var cfgPath string
	var envFile string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Local dev keeps the API key in an env file; absence is fine.
			_ = godotenv.Load(envFile)

			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			return srv.Run(cfg)
		},
	}
	serve.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config/config.json)")
	serve.Flags().StringVar(&envFile, "env-file", "dev.env", "env file to load before reading config")
	return serve
}
