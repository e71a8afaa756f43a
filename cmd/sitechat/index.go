package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func indexCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "index <url>",
		Short: "Crawl a website and build its embedding collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}
			res, err := svc.IndexWebsite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Indexed %s into collection %q (%d chunks)\n", res.URL, res.Collection, res.Chunks)
			if res.Summary != "" {
				fmt.Println("Summary:", res.Summary)
			}
			return nil
		},
	}
}
