package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"doxy-next-gen/pkg/ast"
)

var (
	kindColor   = color.New(color.FgCyan, color.Bold)
	accessColor = color.New(color.FgYellow)
	extentColor = color.New(color.Faint)
)

func (a *app) newParseCmd() *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a C++ file and print its declaration tree",
		Long: `Parse a C++ file with the configured front end and print the declaration
tree the association engine works on: kind, qualified name, access and extent
of every declaration. The output can be in JSON format for further processing
or human-readable format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				return outputJSON(cmd.OutOrStdout(), unit)
			case "human":
				outputHuman(cmd.OutOrStdout(), unit)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}
	parseCmd.Flags().StringP("format", "f", "human", "Output format (human, json)")
	return parseCmd
}

// parseFile reads filename and runs the configured front end on it.
func (a *app) parseFile(cmd *cobra.Command, filename string) (*ast.TranslationUnit, error) {
	fe, _, err := a.frontend(cmd)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	unit, err := fe.Parse(cmd.Context(), filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	return unit, nil
}

type jsonDecl struct {
	Kind          string     `json:"kind"`
	Name          string     `json:"name"`
	QualifiedName string     `json:"qualifiedName"`
	Access        string     `json:"access,omitempty"`
	Extent        ast.Extent `json:"extent"`
	Children      []jsonDecl `json:"children,omitempty"`
}

func outputJSON(w io.Writer, unit *ast.TranslationUnit) error {
	var convert func(*ast.Decl) jsonDecl
	convert = func(d *ast.Decl) jsonDecl {
		jd := jsonDecl{
			Kind:          d.Kind.String(),
			Name:          d.Name,
			QualifiedName: d.QualifiedName(),
			Access:        d.Access.String(),
			Extent:        d.Extent,
		}
		for _, child := range d.Children {
			jd.Children = append(jd.Children, convert(child))
		}
		return jd
	}

	decls := make([]jsonDecl, 0, len(unit.Root.Children))
	for _, d := range unit.Root.Children {
		decls = append(decls, convert(d))
	}

	output := map[string]interface{}{
		"filename":     unit.Filename,
		"declarations": decls,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputHuman(w io.Writer, unit *ast.TranslationUnit) {
	fmt.Fprintf(w, "Parsed file: %s\n", unit.Filename)
	fmt.Fprintf(w, "=====================================\n\n")

	for _, d := range unit.Root.Children {
		printDecl(w, d, 0)
	}

	decls := unit.Decls()
	counts := make(map[ast.Kind]int)
	for _, d := range decls {
		counts[d.Kind]++
	}

	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "--------\n")
	fmt.Fprintf(w, "Total declarations: %d\n", len(decls))
	for k := ast.KindOther; k <= ast.KindField; k++ {
		if counts[k] > 0 {
			fmt.Fprintf(w, "%s: %d\n", k, counts[k])
		}
	}
}

func printDecl(w io.Writer, d *ast.Decl, depth int) {
	indent := strings.Repeat("  ", depth)

	name := d.Name
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(w, "%s%s: %s", indent, kindColor.Sprint(d.Kind), name)
	if qn := d.QualifiedName(); qn != d.Name && qn != "" {
		fmt.Fprintf(w, " (%s)", qn)
	}
	if access := d.Access.String(); access != "" {
		fmt.Fprintf(w, " [%s]", accessColor.Sprint(access))
	}
	fmt.Fprintf(w, " %s\n", extentColor.Sprint(d.Extent))

	for _, child := range d.Children {
		printDecl(w, child, depth+1)
	}
}
