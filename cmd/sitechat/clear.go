package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func clearCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every persisted embedding collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}
			if err := svc.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All indexed collections removed.")
			return nil
		},
	}
}
