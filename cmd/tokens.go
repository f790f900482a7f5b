package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"doxy-next-gen/pkg/comments"
)

var (
	forwardColor = color.New(color.FgGreen)
	backColor    = color.New(color.FgMagenta)
)

func (a *app) newTokensCmd() *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a C++ file",
		Long: `Print every token the configured front end produced, one per line, with
its location and kind. Documentation comments are marked with the direction
they refer to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}

			commentsOnly, _ := cmd.Flags().GetBool("comments")
			out := cmd.OutOrStdout()
			for _, tok := range unit.Tokens {
				if commentsOnly && !tok.IsComment() {
					continue
				}
				marker := ""
				if tok.IsComment() && comments.IsBlockStart(tok.Text) {
					marker = " " + forwardColor.Sprint("[forward]")
					if comments.IsBackReference(tok.Text) {
						marker = " " + backColor.Sprint("[back]")
					}
				}
				fmt.Fprintf(out, "%-8s %-7s %q%s\n", tok.Location, tok.Kind, tok.Text, marker)
			}
			return nil
		},
	}
	tokensCmd.Flags().BoolP("comments", "c", false, "Only print comment tokens")
	return tokensCmd
}
