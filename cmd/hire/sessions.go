package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmora/hire"
	"github.com/dmora/hire/session"
)

const timeLayout = "2006-01-02 15:04:05"

func agentNames() []string {
	names := make([]string, 0, len(hire.Agents()))
	for _, a := range hire.Agents() {
		names = append(names, string(a))
	}
	return names
}

// parseTarget parses an optional agent positional.
func parseTarget(args []string) (hire.Agent, error) {
	if len(args) == 0 {
		return "", nil
	}
	return hire.ParseAgent(args[0])
}

func (a *app) sessionsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:       "sessions [target]",
		Short:     "List sessions",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: agentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := parseTarget(args)
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			list, err := store.List(agent)
			if err != nil {
				return err
			}

			if asJSON {
				if list == nil {
					list = []session.Session{}
				}
				return writeJSON(a.stdout, list)
			}
			if len(list) == 0 {
				if agent != "" {
					fmt.Fprintf(a.stdout, "No sessions found for %s\n", agent)
				} else {
					fmt.Fprintln(a.stdout, "No sessions found")
				}
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, s := range list {
				rows = append(rows, []string{
					string(s.Agent),
					orDash(s.Name),
					s.ShortID(),
					s.UpdatedAt.Local().Format(timeLayout),
				})
			}
			writeTable(a.stdout, newStyles(a.stdout), []string{"AGENT", "NAME", "ID", "UPDATED"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <name-or-id>",
		Short: "Show session details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			sess, err := findSession(store, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.stdout, sess)
			}

			label := newStyles(a.stdout).header
			for _, kv := range [][2]string{
				{"Session:", sess.ID},
				{"Agent:", string(sess.Agent)},
				{"Name:", orDash(sess.Name)},
				{"CLI ID:", sess.ResumeID},
				{"Created:", sess.CreatedAt.Local().Format(timeLayout)},
				{"Updated:", sess.UpdatedAt.Local().Format(timeLayout)},
			} {
				fmt.Fprintf(a.stdout, "%s %s\n", label.Render(fmt.Sprintf("%-8s", kv[0])), kv[1])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

// findSession resolves a name or id, reporting misses as
// hire.ErrSessionNotFound.
func findSession(store *session.Store, nameOrID string) (session.Session, error) {
	sess, ok, err := store.Find(nameOrID)
	if err != nil {
		return session.Session{}, err
	}
	if !ok {
		return session.Session{}, fmt.Errorf("%w: %s", hire.ErrSessionNotFound, nameOrID)
	}
	return sess, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
