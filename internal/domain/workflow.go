package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	"seesharp.dev/pkg/seesharp/internal/controller"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

// PickInteractively asks the UI to choose when passed as ApplyArgs.Action.
const PickInteractively = -1

// ActionsArgs identifies a cursor inside a source file.
type ActionsArgs struct {
	Path     m.Path
	Cursor   m.Position
	Settings m.Settings
}

// ApplyArgs contains the arguments for executing one code action.
type ApplyArgs struct {
	ActionsArgs

	// Action is the zero-based index into the computed actions, or PickInteractively.
	Action int
	DryRun bool
}

// NamespaceArgs contains the files whose namespaces are computed.
type NamespaceArgs struct {
	Targets  []m.Path
	Parallel int
}

// ReferencesArgs locates the project whose references are listed.
type ReferencesArgs struct {
	Path     m.Path
	Projects bool
}

// Workflow ties the document scanner, the action synthesizer, the applier and
// the namespace resolver to a UI.
type Workflow interface {
	Actions(ctx context.Context, args ActionsArgs) error
	Apply(ctx context.Context, args ApplyArgs) error
	Namespaces(ctx context.Context, args NamespaceArgs) error
	References(ctx context.Context, args ReferencesArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI
	CodeActionProvider
	NamespaceResolver

	registry  *CommandRegistry
	projects  adapter.ProjectReader
	formatter adapter.Formatter
	logger    *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	ui controller.UI,
	provider CodeActionProvider,
	registry *CommandRegistry,
	namespaces NamespaceResolver,
	projects adapter.ProjectReader,
	formatter adapter.Formatter,
	logger *slog.Logger,
) Workflow {
	if logger == nil {
		logger = slog.Default()
	}

	return &workflow{
		SourceFSAdapter:    fsAdapter,
		UI:                 ui,
		CodeActionProvider: provider,
		NamespaceResolver:  namespaces,
		registry:           registry,
		projects:           projects,
		formatter:          formatter,
		logger:             logger,
	}
}

func (w *workflow) Actions(ctx context.Context, args ActionsArgs) error {
	doc, err := w.loadDocument(ctx, args.Path, args.Cursor)
	if err != nil {
		return err
	}

	actions := w.ProvideCodeActions(doc, args.Cursor, args.Settings)

	return w.DisplayActions(ctx, args.Path, actions)
}

func (w *workflow) Apply(ctx context.Context, args ApplyArgs) error {
	doc, err := w.loadDocument(ctx, args.Path, args.Cursor)
	if err != nil {
		return err
	}

	actions := w.ProvideCodeActions(doc, args.Cursor, args.Settings)
	if len(actions) == 0 {
		return fmt.Errorf("%w at %s:%d:%d", ErrNoAction, args.Path, args.Cursor.Line+1, args.Cursor.Column+1)
	}

	index := args.Action
	if index == PickInteractively {
		index, err = w.PickAction(ctx, actions)
		if err != nil {
			return fmt.Errorf("pick action: %w", err)
		}

		if index == controller.NoSelection {
			w.logger.Info("no action selected", "path", args.Path)
			return nil
		}
	}

	if index < 0 || index >= len(actions) {
		return fmt.Errorf("%w: %d (available: %d)", ErrActionOutOfRange, index+1, len(actions))
	}

	var sink adapter.EditSink = adapter.NewFileEditSink(w.SourceFSAdapter, w.logger)
	if args.DryRun {
		sink = adapter.NewMemoryEditSink(doc)
	}

	result, err := NewEditApplier(w.registry, sink, w.formatter, w.logger).Apply(ctx, doc, actions[index], args.Settings)
	if err != nil {
		return fmt.Errorf("apply %q: %w", actions[index].Title, err)
	}

	return w.DisplayApplyResult(ctx, args.Path, doc.Text(), result)
}

func (w *workflow) Namespaces(ctx context.Context, args NamespaceArgs) error {
	results := make([]m.NamespaceResult, len(args.Targets))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for i, target := range args.Targets {
		group.Go(func() error {
			namespace, err := w.Resolve(groupCtx, m.NamespaceQuery{Target: target})
			if err != nil {
				return fmt.Errorf("namespace for %s: %w", target, err)
			}

			results[i] = m.NamespaceResult{Target: target, Namespace: namespace}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	return w.DisplayNamespaces(ctx, results)
}

func (w *workflow) References(ctx context.Context, args ReferencesArgs) error {
	start := args.Path
	if start == "" {
		start = "."
	}

	info, err := w.FileInfo(ctx, start)
	if err != nil {
		return fmt.Errorf("stat %s: %w", start, err)
	}

	dir := string(start)
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	projectFile, err := w.FindUp(ctx, m.Path(dir), projectFilePattern)
	if err != nil {
		return fmt.Errorf("find project file: %w", err)
	}

	if projectFile == "" {
		return fmt.Errorf("%w above %s", ErrProjectNotFound, start)
	}

	content, err := w.ReadFile(ctx, projectFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", projectFile, err)
	}

	project := w.projects.ReadProject(content)
	w.logger.Debug("project read", "path", projectFile, "packages", len(project.PackageReferences), "projects", len(project.ProjectReferences))

	return w.DisplayReferences(ctx, projectFile, project, args.Projects)
}

func (w *workflow) loadDocument(ctx context.Context, path m.Path, cursor m.Position) (*adapter.TextDocument, error) {
	content, err := w.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := adapter.NewTextDocument(path, content)

	if cursor.Line < 0 || cursor.Line >= doc.LineCount() || cursor.Column < 0 {
		return nil, fmt.Errorf("%w: line %d column %d in %s (%d lines)",
			ErrPositionOutOfRange, cursor.Line+1, cursor.Column+1, path, doc.LineCount())
	}

	return doc, nil
}
