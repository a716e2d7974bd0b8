package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) deleteCmd() *cobra.Command {
	var all, force bool
	cmd := &cobra.Command{
		Use:   "delete [name-or-id]",
		Short: "Delete a session, or all sessions with --all",
		Long: `Delete one session by name or id. With --all, delete every session,
or every session of the agent given as the argument.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return a.deleteAll(args, force)
			}
			if len(args) == 0 {
				return errors.New("session name or id is required (or --all)")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			sess, err := findSession(store, args[0])
			if err != nil {
				return err
			}
			if !force {
				fmt.Fprintf(a.stdout, "Delete session %s (%s, name=%s)?\n", sess.ShortID(), sess.Agent, orDash(sess.Name))
				if !a.confirm() {
					fmt.Fprintln(a.stdout, "Cancelled")
					return nil
				}
			}
			ok, err := store.Delete(sess)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("failed to delete session %s", sess.ShortID())
			}
			fmt.Fprintf(a.stdout, "Deleted session: %s\n", sess.ShortID())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "delete all sessions")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")
	return cmd
}

func (a *app) deleteAll(args []string, force bool) error {
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
	if len(list) == 0 {
		fmt.Fprintln(a.stdout, "No sessions found")
		return nil
	}
	if !force {
		scope := "all"
		if agent != "" {
			scope = "all " + string(agent)
		}
		fmt.Fprintf(a.stdout, "Delete %s sessions (%d)?\n", scope, len(list))
		if !a.confirm() {
			fmt.Fprintln(a.stdout, "Cancelled")
			return nil
		}
	}
	n, err := store.DeleteAll(agent)
	fmt.Fprintf(a.stdout, "Deleted %d sessions\n", n)
	return err
}

// confirm asks for a typed "yes" on stdin.
func (a *app) confirm() bool {
	fmt.Fprint(a.stdout, "Type 'yes' to confirm: ")
	if a.stdin == nil {
		return false
	}
	line, _ := bufio.NewReader(a.stdin).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}
