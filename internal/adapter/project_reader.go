package adapter

import (
	"encoding/xml"
	"log/slog"
	"strings"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

// ProjectReader extracts references and the root namespace from a project
// descriptor (.csproj). Malformed input yields an empty Project.
type ProjectReader interface {
	ReadProject(content []byte) m.Project
}

// ManifestReader extracts the root namespace from a legacy project.json manifest.
type ManifestReader interface {
	RootNamespace(content []byte) (string, bool)
}

type csprojReference struct {
	Include      string `xml:"Include,attr"`
	Version      string `xml:"Version,attr"`
	VersionChild string `xml:"Version"`
}

type csprojItemGroup struct {
	PackageReferences []csprojReference `xml:"PackageReference"`
	ProjectReferences []csprojReference `xml:"ProjectReference"`
}

type csprojPropertyGroup struct {
	RootNamespace *string `xml:"RootNamespace"`
}

type csprojDocument struct {
	XMLName        xml.Name              `xml:"Project"`
	PropertyGroups []csprojPropertyGroup `xml:"PropertyGroup"`
	ItemGroups     []csprojItemGroup     `xml:"ItemGroup"`
}

// CsprojReader implements ProjectReader with encoding/xml.
type CsprojReader struct {
	logger *slog.Logger
}

// NewCsprojReader constructs a CsprojReader.
func NewCsprojReader(logger *slog.Logger) *CsprojReader {
	if logger == nil {
		logger = slog.Default()
	}

	return &CsprojReader{logger: logger}
}

// ReadProject parses a .csproj document. The first PropertyGroup declaring a
// non-blank RootNamespace wins.
func (r *CsprojReader) ReadProject(content []byte) m.Project {
	var doc csprojDocument

	if err := xml.Unmarshal(content, &doc); err != nil {
		r.logger.Debug("error parsing project xml", "error", err)
		return m.Project{}
	}

	var project m.Project

	for _, group := range doc.PropertyGroups {
		if group.RootNamespace == nil {
			continue
		}

		if ns := strings.TrimSpace(*group.RootNamespace); ns != "" {
			project.RootNamespace = ns
			break
		}
	}

	for _, group := range doc.ItemGroups {
		for _, ref := range group.PackageReferences {
			version := ref.Version
			if version == "" {
				version = strings.TrimSpace(ref.VersionChild)
			}

			project.PackageReferences = append(project.PackageReferences, m.PackageReference{
				Include: ref.Include,
				Version: version,
			})
		}

		for _, ref := range group.ProjectReferences {
			project.ProjectReferences = append(project.ProjectReferences, m.ProjectReference{
				Include: ref.Include,
			})
		}
	}

	return project
}
