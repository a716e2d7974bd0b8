package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dmora/hire"
	"github.com/dmora/hire/internal/dispatch"
)

type askOptions struct {
	cont    bool
	session string
	name    string
	model   string
	json    bool
	clip    bool
	out     string
}

func applyAskFlags(fs *pflag.FlagSet, o *askOptions) {
	fs.BoolVarP(&o.cont, "continue", "c", false, "continue the latest session")
	fs.StringVarP(&o.session, "session", "s", "", "continue a specific session (name or id)")
	fs.StringVarP(&o.name, "name", "n", "", "name the session")
	fs.StringVarP(&o.model, "model", "m", "", "model to use")
	fs.BoolVar(&o.json, "json", false, "output JSON")
	fs.BoolVar(&o.clip, "clip", false, "copy the output to the clipboard")
	fs.StringVarP(&o.out, "out", "o", "", "also write the output to `FILE`")
}

// askOutput is the --json shape of an answer.
type askOutput struct {
	Response     string     `json:"response"`
	SessionID    string     `json:"session_id"`
	CLISessionID string     `json:"cli_session_id"`
	Agent        hire.Agent `json:"agent"`
	Name         *string    `json:"name"`
}

func (a *app) ask(cmd *cobra.Command, args []string, o askOptions) error {
	stdin, err := a.readStdin()
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	target, message := dispatch.SplitArgs(args)
	message = dispatch.BuildMessage(message, stdin)
	if len(args) == 0 && message == "" && cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	store, err := a.openStore()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res, err := a.dispatcher(store, cfg).Ask(ctx, dispatch.AskInput{
		Target:   target,
		Message:  message,
		Continue: o.cont,
		Session:  o.session,
		Name:     o.name,
		Model:    o.model,
	})
	if err != nil {
		if res.Response.Raw != "" {
			return &agentFailure{err: err, raw: res.Response.Raw}
		}
		return err
	}

	out := res.Response.Text
	if o.json {
		v := askOutput{
			Response:     res.Response.Text,
			SessionID:    res.Session.ID,
			CLISessionID: res.Session.ResumeID,
			Agent:        res.Agent,
		}
		if res.Session.Name != "" {
			v.Name = &res.Session.Name
		}
		if out, err = marshalJSON(v); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.stdout, out)

	if o.out != "" {
		if err := os.WriteFile(o.out, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if o.clip {
		if err := a.copy(ctx, out); err != nil {
			a.logger.Debug("clipboard copy failed", "error", err)
			fmt.Fprintln(a.stderr, "\n(Failed to copy to clipboard)")
		} else {
			fmt.Fprintln(a.stderr, "\n(Copied to clipboard)")
		}
	}
	return nil
}
