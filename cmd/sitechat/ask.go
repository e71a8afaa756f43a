package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sitechat/internal/vectorstore"
)

func askCMD(cfgPath *string) *cobra.Command {
	var rawURL, collection string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a one-shot question against an indexed website",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if collection == "" {
				if rawURL == "" {
					return errors.New("either --collection or --url is required")
				}
				collection = vectorstore.CollectionName(rawURL)
			}
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			svc, err := buildService(cfg)
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")
			fmt.Println(svc.Ask(cmd.Context(), collection, question, nil))
			return nil
		},
	}
	cmd.Flags().StringVar(&rawURL, "url", "", "website URL whose collection to query")
	cmd.Flags().StringVar(&collection, "collection", "", "collection name to query")
	return cmd
}
