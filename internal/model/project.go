package model

// PackageReference is a <PackageReference Include=".." Version=".."/> item.
type PackageReference struct {
	Include string `yaml:"include"`
	Version string `yaml:"version,omitempty"`
}

// ProjectReference is a <ProjectReference Include=".."/> item.
type ProjectReference struct {
	Include string `yaml:"include"`
}

// Project is the subset of a project descriptor the assistant understands.
// RootNamespace is empty when the descriptor declares none or cannot be parsed.
type Project struct {
	RootNamespace     string
	PackageReferences []PackageReference
	ProjectReferences []ProjectReference
}

// NamespaceQuery asks for the namespace a file at Target should declare.
type NamespaceQuery struct {
	Target Path
}

// NamespaceResult pairs a namespace query target with its computed namespace.
type NamespaceResult struct {
	Target    Path   `yaml:"path"`
	Namespace string `yaml:"namespace"`
}
