package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgomes/rox/rox"
)

func newTokenizeCmd(a *app) *cobra.Command {
	var expr string
	cmd := &cobra.Command{
		Use:   "tokenize [file]",
		Short: "Print the token stream of a file",
		Long: `Print one line per token in the form "<KIND> <lexeme> <literal>",
ending with "EOF null". Lexical errors are reported on stderr and scanning
continues; the exit status is 65 if any occurred.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, source, err := a.readSource(args, expr, cmd.Flags().Changed("expr"))
			if err != nil {
				return err
			}
			return a.tokenize(name, source)
		},
	}
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "tokenize this text instead of a file")
	return cmd
}

func (a *app) tokenize(name, source string) error {
	var tokens, failures int
	for tok, err := range rox.NewScanner(source).Tokens() {
		if err != nil {
			failures++
			a.reportErrors(rox.Diagnostics(err))
			continue
		}
		tokens++
		fmt.Fprintln(a.stdout, tok)
	}

	a.logger.Debug("tokenized", "source", name, "tokens", tokens, "errors", failures)
	if failures > 0 {
		return &exitError{code: exitDataError, msg: fmt.Sprintf("%s: %d lexical error(s)", name, failures)}
	}
	return nil
}
