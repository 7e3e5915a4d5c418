package domain

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	"seesharp.dev/pkg/seesharp/internal/controller"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

type recordingUI struct {
	mu sync.Mutex

	pick    int
	pickErr error

	actions     []m.CodeAction
	applyBefore string
	applied     *m.ApplyResult
	namespaces  []m.NamespaceResult
	projectFile m.Path
	project     m.Project
	projectRefs bool
}

func (u *recordingUI) DisplayActions(_ context.Context, _ m.Path, actions []m.CodeAction) error {
	u.actions = actions
	return nil
}

func (u *recordingUI) PickAction(_ context.Context, actions []m.CodeAction) (int, error) {
	u.actions = actions
	return u.pick, u.pickErr
}

func (u *recordingUI) DisplayApplyResult(_ context.Context, _ m.Path, before string, result m.ApplyResult) error {
	u.applyBefore = before
	u.applied = &result

	return nil
}

func (u *recordingUI) DisplayNamespaces(_ context.Context, results []m.NamespaceResult) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.namespaces = results

	return nil
}

func (u *recordingUI) DisplayReferences(_ context.Context, projectFile m.Path, project m.Project, projectRefs bool) error {
	u.projectFile = projectFile
	u.project = project
	u.projectRefs = projectRefs

	return nil
}

func newTestWorkflow(ui controller.UI, workspaceRoot string) Workflow {
	fs := adapter.NewLocalSourceFSAdapter(nil)
	projects := adapter.NewCsprojReader(nil)

	return NewWorkflow(
		fs,
		ui,
		NewCodeActionProvider(nil),
		NewCommandRegistry(),
		NewNamespaceResolver(fs, projects, adapter.NewProjectJSONReader(), m.Path(workspaceRoot), nil),
		projects,
		adapter.NewIndentFormatter(),
		nil,
	)
}

func copyExample(t *testing.T, parts ...string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(append([]string{"..", "..", "examples"}, parts...)...))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), parts[len(parts)-1])
	writeFile(t, path, string(content))

	return path
}

func TestWorkflow_Actions(t *testing.T) {
	ui := &recordingUI{}
	path := filepath.Join("..", "..", "examples", "point", "Point.cs")

	err := newTestWorkflow(ui, "").Actions(context.Background(), ActionsArgs{
		Path:     m.Path(path),
		Cursor:   m.Position{Line: 4, Column: 25},
		Settings: m.DefaultSettings(),
	})
	require.NoError(t, err)
	require.Len(t, ui.actions, 3)
	assert.Equal(t, "Initialize field from parameter...", ui.actions[0].Title)
}

func TestWorkflow_Actions_PositionOutOfRange(t *testing.T) {
	path := filepath.Join("..", "..", "examples", "point", "Point.cs")

	err := newTestWorkflow(&recordingUI{}, "").Actions(context.Background(), ActionsArgs{
		Path:   m.Path(path),
		Cursor: m.Position{Line: 99},
	})
	require.ErrorIs(t, err, ErrPositionOutOfRange)
}

func TestWorkflow_Apply(t *testing.T) {
	path := copyExample(t, "point", "Point.cs")
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	args := ApplyArgs{
		ActionsArgs: ActionsArgs{Path: m.Path(path), Cursor: m.Position{Line: 4, Column: 25}, Settings: m.DefaultSettings()},
		Action:      0,
	}

	t.Run("dry run leaves the file alone", func(t *testing.T) {
		ui := &recordingUI{}
		dry := args
		dry.DryRun = true

		require.NoError(t, newTestWorkflow(ui, "").Apply(context.Background(), dry))
		require.NotNil(t, ui.applied)
		assert.Equal(t, pointWithField, ui.applied.Text)
		assert.Equal(t, string(original), ui.applyBefore)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, string(original), string(content))
	})

	t.Run("writes the file", func(t *testing.T) {
		ui := &recordingUI{}

		require.NoError(t, newTestWorkflow(ui, "").Apply(context.Background(), args))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, pointWithField, string(content))
	})

	t.Run("second run changes nothing", func(t *testing.T) {
		ui := &recordingUI{}
		again := args
		again.Cursor.Line = 5

		require.NoError(t, newTestWorkflow(ui, "").Apply(context.Background(), again))
		require.NotNil(t, ui.applied)
		assert.False(t, ui.applied.Changed())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, pointWithField, string(content))
	})
}

func TestWorkflow_Apply_Selection(t *testing.T) {
	path := filepath.Join("..", "..", "examples", "point", "Point.cs")
	base := ApplyArgs{
		ActionsArgs: ActionsArgs{Path: m.Path(path), Cursor: m.Position{Line: 4, Column: 25}, Settings: m.DefaultSettings()},
		DryRun:      true,
	}

	t.Run("out of range", func(t *testing.T) {
		args := base
		args.Action = 3

		err := newTestWorkflow(&recordingUI{}, "").Apply(context.Background(), args)
		require.ErrorIs(t, err, ErrActionOutOfRange)
	})

	t.Run("picked interactively", func(t *testing.T) {
		ui := &recordingUI{pick: 2}
		args := base
		args.Action = PickInteractively

		require.NoError(t, newTestWorkflow(ui, "").Apply(context.Background(), args))
		require.NotNil(t, ui.applied)
		assert.Contains(t, ui.applied.Text, "public int X { get; set; }")
		assert.Contains(t, ui.applied.Text, "this.X = x;")
	})

	t.Run("picker cancelled", func(t *testing.T) {
		ui := &recordingUI{pick: controller.NoSelection}
		args := base
		args.Action = PickInteractively

		require.NoError(t, newTestWorkflow(ui, "").Apply(context.Background(), args))
		assert.Nil(t, ui.applied)
	})

	t.Run("picker needs a choice", func(t *testing.T) {
		ui := &recordingUI{pick: controller.NoSelection, pickErr: controller.ErrSelectionRequired}
		args := base
		args.Action = PickInteractively

		err := newTestWorkflow(ui, "").Apply(context.Background(), args)
		require.ErrorIs(t, err, controller.ErrSelectionRequired)
	})

	t.Run("nothing to apply", func(t *testing.T) {
		args := base
		args.Cursor = m.Position{Line: 0, Column: 0}

		err := newTestWorkflow(&recordingUI{}, "").Apply(context.Background(), args)
		require.ErrorIs(t, err, ErrNoAction)
	})
}

func TestWorkflow_Namespaces_KeepsArgumentOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "p", "Foo.Bar.csproj"), fooBarProject)

	targets := []m.Path{
		m.Path(filepath.Join(root, "p", "A", "One.cs")),
		m.Path(filepath.Join(root, "p", "Two.cs")),
		m.Path(filepath.Join(root, "loose", "Three.cs")),
		m.Path(filepath.Join(root, "p", "B", "C", "Four.cs")),
	}

	ui := &recordingUI{}

	err := newTestWorkflow(ui, root).Namespaces(context.Background(), NamespaceArgs{Targets: targets, Parallel: 2})
	require.NoError(t, err)

	assert.Equal(t, []m.NamespaceResult{
		{Target: targets[0], Namespace: "Foo.Bar.A"},
		{Target: targets[1], Namespace: "Foo.Bar"},
		{Target: targets[2], Namespace: "loose"},
		{Target: targets[3], Namespace: "Foo.Bar.B.C"},
	}, ui.namespaces)
}

func TestWorkflow_References(t *testing.T) {
	examples := filepath.Join("..", "..", "examples", "library")

	t.Run("packages", func(t *testing.T) {
		ui := &recordingUI{}

		err := newTestWorkflow(ui, "").References(context.Background(), ReferencesArgs{Path: m.Path(filepath.Join(examples, "Services", "Billing"))})
		require.NoError(t, err)
		assert.Equal(t, "Library.csproj", filepath.Base(string(ui.projectFile)))
		assert.Equal(t, []m.PackageReference{
			{Include: "Newtonsoft.Json", Version: "13.0.3"},
			{Include: "Serilog", Version: "3.1.1"},
		}, ui.project.PackageReferences)
		assert.False(t, ui.projectRefs)
	})

	t.Run("projects from a file path", func(t *testing.T) {
		ui := &recordingUI{}

		err := newTestWorkflow(ui, "").References(context.Background(), ReferencesArgs{
			Path:     m.Path(filepath.Join(examples, "Services", "Billing", "Invoice.cs")),
			Projects: true,
		})
		require.NoError(t, err)
		assert.Equal(t, []m.ProjectReference{{Include: `..\Core\Core.csproj`}}, ui.project.ProjectReferences)
		assert.True(t, ui.projectRefs)
	})

	t.Run("no project", func(t *testing.T) {
		err := newTestWorkflow(&recordingUI{}, "").References(context.Background(), ReferencesArgs{Path: m.Path(t.TempDir())})
		require.ErrorIs(t, err, ErrProjectNotFound)
	})
}
