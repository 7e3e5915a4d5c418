package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

const (
	projectFilePattern  = "*.csproj"
	manifestFilePattern = "project.json"
	namespaceSeparator  = "."
)

// NamespaceResolver computes the namespace a new file should declare.
type NamespaceResolver interface {
	Resolve(ctx context.Context, query m.NamespaceQuery) (string, error)
}

type namespaceResolver struct {
	fs            adapter.SourceFSAdapter
	projects      adapter.ProjectReader
	manifests     adapter.ManifestReader
	workspaceRoot m.Path
	logger        *slog.Logger
}

// NewNamespaceResolver creates a NamespaceResolver. workspaceRoot is the
// fallback root when no project file exists above the target.
func NewNamespaceResolver(
	fs adapter.SourceFSAdapter,
	projects adapter.ProjectReader,
	manifests adapter.ManifestReader,
	workspaceRoot m.Path,
	logger *slog.Logger,
) NamespaceResolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &namespaceResolver{
		fs:            fs,
		projects:      projects,
		manifests:     manifests,
		workspaceRoot: workspaceRoot,
		logger:        logger,
	}
}

// Resolve tries, in order: the RootNamespace of the nearest .csproj, the
// tooling.defaultNamespace of the nearest project.json, and finally the
// directories below the project's parent (or the workspace root). Read and
// parse failures fall through to the next strategy; only cancellation and
// unusable paths are returned as errors.
func (r *namespaceResolver) Resolve(ctx context.Context, query m.NamespaceQuery) (string, error) {
	target, err := filepath.Abs(string(query.Target))
	if err != nil {
		return "", fmt.Errorf("resolve target path %s: %w", query.Target, err)
	}

	targetDir := filepath.Dir(target)

	projectFile, err := r.fs.FindUp(ctx, m.Path(targetDir), projectFilePattern)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		r.logger.Debug("project file lookup failed", "target", target, "error", err)
	}

	if projectFile != "" {
		if root, ok := r.projectNamespace(ctx, projectFile); ok {
			return fullNamespace(root, filepath.Dir(string(projectFile)), targetDir), nil
		}
	}

	manifestFile, err := r.fs.FindUp(ctx, m.Path(targetDir), manifestFilePattern)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		r.logger.Debug("manifest lookup failed", "target", target, "error", err)
	}

	if manifestFile != "" {
		if root, ok := r.manifestNamespace(ctx, manifestFile); ok {
			return fullNamespace(root, filepath.Dir(string(manifestFile)), targetDir), nil
		}
	}

	rootDir, err := r.rootDirectory(projectFile, manifestFile)
	if err != nil {
		return "", err
	}

	return strings.TrimPrefix(fullNamespace("", rootDir, targetDir), namespaceSeparator), nil
}

func (r *namespaceResolver) projectNamespace(ctx context.Context, projectFile m.Path) (string, bool) {
	content, err := r.fs.ReadFile(ctx, projectFile)
	if err != nil {
		r.logger.Debug("cannot read project file", "path", projectFile, "error", err)
		return "", false
	}

	project := r.projects.ReadProject(content)

	return project.RootNamespace, project.RootNamespace != ""
}

func (r *namespaceResolver) manifestNamespace(ctx context.Context, manifestFile m.Path) (string, bool) {
	content, err := r.fs.ReadFile(ctx, manifestFile)
	if err != nil {
		r.logger.Debug("cannot read manifest", "path", manifestFile, "error", err)
		return "", false
	}

	return r.manifests.RootNamespace(content)
}

// rootDirectory returns the parent of the directory holding the nearest
// project file or manifest, else the workspace root.
func (r *namespaceResolver) rootDirectory(projectFile, manifestFile m.Path) (string, error) {
	switch {
	case projectFile != "":
		return filepath.Dir(filepath.Dir(string(projectFile))), nil
	case manifestFile != "":
		return filepath.Dir(filepath.Dir(string(manifestFile))), nil
	case r.workspaceRoot == "":
		return "", nil
	}

	root, err := filepath.Abs(string(r.workspaceRoot))
	if err != nil {
		return "", fmt.Errorf("resolve workspace root %s: %w", r.workspaceRoot, err)
	}

	return root, nil
}

// fullNamespace appends one segment per directory of targetDir that lies
// deeper than rootDir. Segments are matched by depth, not by name.
func fullNamespace(rootNamespace, rootDir, targetDir string) string {
	rootSegments := splitPath(rootDir)
	targetSegments := splitPath(targetDir)

	var b strings.Builder

	b.WriteString(rootNamespace)

	for i := len(rootSegments); i < len(targetSegments); i++ {
		b.WriteString(namespaceSeparator)
		b.WriteString(targetSegments[i])
	}

	return b.String()
}

func splitPath(path string) []string {
	sep := string(filepath.Separator)
	return strings.Split(strings.TrimSuffix(filepath.Clean(path), sep), sep)
}
