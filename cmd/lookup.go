package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"doxy-next-gen/pkg/document"
	"doxy-next-gen/pkg/doxygen"
	"doxy-next-gen/pkg/formatter"
	"doxy-next-gen/pkg/model"
)

func (a *app) newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [file] [qualified-name]",
		Short: "Print the documentation recorded for one declaration",
		Long: `Process a file and print every association recorded for a qualified name
such as namespace::Class::method, followed by the Doxygen fields parsed from
its comment. Out-of-line definitions produce a record of their own.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, name := args[0], args[1]

			cfg, log, err := a.setup(cmd)
			if err != nil {
				return err
			}
			opts, err := documentOptions(cfg, log)
			if err != nil {
				return err
			}
			doc, err := document.NewFromFile(cmd.Context(), filename, opts)
			if err != nil {
				return err
			}

			found := doc.Lookup(name)
			if len(found) == 0 {
				return fmt.Errorf("declaration not found: %s", name)
			}

			text := formatter.NewText(cfg.Report.Delimiter)
			out := cmd.OutOrStdout()
			for _, assoc := range found {
				fmt.Fprint(out, text.Record(assoc))
				printFields(out, assoc)
			}
			return nil
		},
	}
}

func printFields(w io.Writer, assoc model.Association) {
	if assoc.Comment == nil {
		return
	}
	c := doxygen.Parse(assoc.Comment.Text)
	if c == nil {
		return
	}
	if c.Brief != "" {
		fmt.Fprintf(w, "Brief: %s\n", c.Brief)
	}
	if c.Detailed != "" {
		fmt.Fprintf(w, "Details: %s\n", c.Detailed)
	}
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "Param %s: %s\n", name, c.Params[name])
	}
	if c.Returns != "" {
		fmt.Fprintf(w, "Returns: %s\n", c.Returns)
	}
	for _, t := range c.Throws {
		fmt.Fprintf(w, "Throws: %s\n", t)
	}
	if c.Deprecated != "" {
		fmt.Fprintf(w, "Deprecated: %s\n", c.Deprecated)
	}
	fmt.Fprintln(w)
}
