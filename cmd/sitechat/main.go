package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sitechat/internal/config"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	root := &cobra.Command{
		Use:   "sitechat",
		Short: "Index a website and ask questions about its content",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default ./config.yaml, then ~/.config/sitechat/config.yaml)")

	root.AddCommand(chatCMD(&cfgPath), indexCMD(&cfgPath), askCMD(&cfgPath), clearCMD(&cfgPath))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(path)
}
