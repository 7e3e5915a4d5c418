package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

const diffContextLines = 3

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd    *cobra.Command
	format OutputFormat
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, opts ...Option) *SimpleUI {
	o := buildOptions(opts)

	return &SimpleUI{cmd: cmd, format: o.format}
}

type actionView struct {
	Index    int         `yaml:"index"`
	Title    string      `yaml:"title"`
	Command  m.CommandID `yaml:"command"`
	Target   string      `yaml:"target"`
	Argument any         `yaml:"argument"`
}

// DisplayActions lists the available code actions, numbered from 1.
func (s *SimpleUI) DisplayActions(ctx context.Context, path m.Path, actions []m.CodeAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	views := make([]actionView, 0, len(actions))
	for i, action := range actions {
		views = append(views, actionView{
			Index:    i + 1,
			Title:    action.Title,
			Command:  action.Command,
			Target:   describeTarget(action),
			Argument: action.Argument,
		})
	}

	if s.format == FormatYAML {
		return s.printYAML(map[string]any{"path": path, "actions": views})
	}

	if len(actions) == 0 {
		s.printf("No code actions available in %s\n", path)
		return nil
	}

	var buf bytes.Buffer

	table := newTable(&buf)
	table.SetHeader([]string{"#", "Action", "Target"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, view := range views {
		table.Append([]string{fmt.Sprintf("%d", view.Index), view.Title, view.Target})
	}

	table.Render()
	s.printf("%s", buf.String())

	return nil
}

// PickAction selects the only action when there is exactly one; otherwise
// the caller must name one explicitly.
func (s *SimpleUI) PickAction(ctx context.Context, actions []m.CodeAction) (int, error) {
	if err := ctx.Err(); err != nil {
		return NoSelection, err
	}

	switch len(actions) {
	case 0:
		return NoSelection, nil
	case 1:
		return 0, nil
	default:
		return NoSelection, ErrSelectionRequired
	}
}

// DisplayApplyResult prints a unified diff of the change, or why nothing changed.
func (s *SimpleUI) DisplayApplyResult(ctx context.Context, path m.Path, before string, result m.ApplyResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !result.Changed() {
		s.printf("No changes to %s\n", path)

		for _, fragment := range result.Skipped {
			s.printf("  already present: %s\n", fragment)
		}

		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(result.Text),
		FromFile: string(path),
		ToFile:   string(path),
		Context:  diffContextLines,
	})
	if err != nil {
		return fmt.Errorf("render diff: %w", err)
	}

	s.printf("%s", colorizeDiff(diff))

	return nil
}

// DisplayNamespaces prints one namespace per query. A single plain result is
// printed bare so it can be captured by scripts.
func (s *SimpleUI) DisplayNamespaces(ctx context.Context, results []m.NamespaceResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format == FormatYAML {
		return s.printYAML(results)
	}

	if len(results) == 1 {
		s.printf("%s\n", results[0].Namespace)
		return nil
	}

	var buf bytes.Buffer

	table := newTable(&buf)
	table.SetHeader([]string{"Path", "Namespace"})

	for _, result := range results {
		table.Append([]string{string(result.Target), result.Namespace})
	}

	table.Render()
	s.printf("%s", buf.String())

	return nil
}

// DisplayReferences lists package references, or project references when projectRefs is set.
func (s *SimpleUI) DisplayReferences(ctx context.Context, projectFile m.Path, project m.Project, projectRefs bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format == FormatYAML {
		if projectRefs {
			return s.printYAML(map[string]any{"project": projectFile, "project_references": project.ProjectReferences})
		}

		return s.printYAML(map[string]any{"project": projectFile, "package_references": project.PackageReferences})
	}

	var buf bytes.Buffer

	table := newTable(&buf)

	if projectRefs {
		table.SetHeader([]string{"Project", "Path"})

		for _, ref := range project.ProjectReferences {
			table.Append([]string{projectName(ref.Include), ref.Include})
		}

		table.SetFooter([]string{fmt.Sprintf("Total %d", len(project.ProjectReferences)), ""})
	} else {
		table.SetHeader([]string{"Package", "Version"})

		for _, ref := range project.PackageReferences {
			table.Append([]string{ref.Include, ref.Version})
		}

		table.SetFooter([]string{fmt.Sprintf("Total %d", len(project.PackageReferences)), ""})
	}

	s.printf("%s\n", projectFile)
	table.Render()
	s.printf("%s", buf.String())

	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func (s *SimpleUI) printYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	s.printf("%s", out)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func describeTarget(action m.CodeAction) string {
	switch arg := action.Argument.(type) {
	case *m.MemberInitialization:
		return fmt.Sprintf("%s %s (%s)", arg.Type, arg.Name, arg.Plan.Variant)
	case *m.ConstructorFromPropertiesPlan:
		return fmt.Sprintf("%s (%d properties)", arg.Class.Name, len(arg.Properties))
	default:
		return ""
	}
}

// projectName returns the file name of a project reference without its
// extension. Includes are written with Windows separators.
func projectName(include string) string {
	base := path.Base(strings.ReplaceAll(include, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func colorizeDiff(diff string) string {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)

	lines := strings.SplitAfter(diff, "\n")

	var b strings.Builder

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(line)
		case strings.HasPrefix(line, "+"):
			b.WriteString(added.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removed.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunk.Sprint(line))
		default:
			b.WriteString(line)
		}
	}

	return b.String()
}
