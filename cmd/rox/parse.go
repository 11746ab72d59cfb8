package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mgomes/rox/internal/config"
	"github.com/mgomes/rox/rox"
)

func newParseCmd(a *app) *cobra.Command {
	var expr, format string
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree of an expression",
		Long: `Parse a single expression and print its tree. The sexpr format prints
the parenthesized form, e.g. (+ 1 (* 2 3)); json and yaml print
the tree with node kinds and line numbers. Errors exit with status 65.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Parse.Format
			}
			name, source, err := a.readSource(args, expr, cmd.Flags().Changed("expr"))
			if err != nil {
				return err
			}
			return a.parse(name, source, format)
		},
	}
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "parse this text instead of a file")
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatSExpr, "output format: sexpr, json or yaml")
	return cmd
}

func (a *app) parse(name, source, format string) error {
	expr, err := rox.ParseString(source)
	if err != nil {
		lines := rox.Diagnostics(err)
		a.reportErrors(lines)
		a.logger.Debug("parse failed", "source", name, "errors", len(lines))
		return &exitError{code: exitDataError, msg: fmt.Sprintf("%s: %d error(s)", name, len(lines))}
	}
	a.logger.Debug("parsed", "source", name, "depth", rox.Depth(expr))

	out, err := renderTree(expr, format)
	if err != nil {
		return err
	}
	fmt.Fprint(a.stdout, out)
	return nil
}

func renderTree(expr rox.Expr, format string) (string, error) {
	switch format {
	case config.FormatSExpr:
		return rox.Sprint(expr) + "\n", nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(rox.Tree(expr), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data) + "\n", nil
	case config.FormatYAML:
		data, err := yaml.Marshal(rox.Tree(expr))
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}
