package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sitechat/internal/session"
	"sitechat/internal/tui"
)

func chatCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat over an indexed website",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(*cfgPath)
		},
	}
}

func runChat(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	svc, err := buildService(cfg)
	if err != nil {
		return err
	}
	m := tui.New(svc, session.New())
	_, err = tea.NewProgram(m).Run()
	return err
}
