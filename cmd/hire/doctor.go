package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmora/hire/internal/config"
	"github.com/dmora/hire/internal/dispatch"
)

func (a *app) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and agent availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := newStyles(a.stdout)

			path, err := config.Path()
			if err != nil {
				return err
			}
			cfgNote := "(not found, using defaults)"
			if _, err := os.Stat(path); err == nil {
				cfgNote = ""
			}
			sessions, err := config.SessionsDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s %s %s\n", st.header.Render("config:  "), path, st.faint.Render(cfgNote))
			fmt.Fprintf(a.stdout, "%s %s\n", st.header.Render("sessions:"), sessions)

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			available := 0
			for _, s := range dispatch.Check(cfg) {
				if s.Err != nil {
					a.logger.Debug("agent unavailable", "agent", s.Agent, "error", s.Err)
					fmt.Fprintf(a.stdout, "%s %-7s not found (%s)\n", st.bad.Render("✗"), s.Agent, s.Binary)
					continue
				}
				available++
				fmt.Fprintf(a.stdout, "%s %-7s %s\n", st.ok.Render("✓"), s.Agent, s.Path)
			}
			if available == 0 {
				return errors.New("no agent CLI is available")
			}
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hire version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "hire %s\n", version)
		},
	}
}
