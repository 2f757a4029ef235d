package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Lab defaults.
const (
	DefaultLab          = "petclinic"
	DefaultTemplateType = "terraform_v1.6"
	DefaultLocation     = "us-south"
	DefaultDescription  = "Created by automation"
)

// ErrUnknownLab is returned when a lab name is not in the registry.
var ErrUnknownLab = errors.New("unknown lab")

// Lab describes the resources one lab needs on the director site.
type Lab struct {
	Name      string       `yaml:"name" validate:"required,lab_name"`
	Catalog   string       `yaml:"catalog" validate:"required"`
	Items     []LabItem    `yaml:"items" validate:"required,min=1,unique=Name,dive"`
	Workspace LabWorkspace `yaml:"workspace"`
}

// LabItem is one catalog item and the OVF it is imported from.
type LabItem struct {
	Name   string `yaml:"name" validate:"required"`
	Source string `yaml:"source" validate:"required,http_url"`
}

// LabWorkspace describes the Schematics workspace template for a lab.
// The deployed workspace name is Name suffixed with the region.
type LabWorkspace struct {
	Name         string `yaml:"name" validate:"required"`
	Repository   string `yaml:"repository" validate:"required,http_url"`
	Folder       string `yaml:"folder" validate:"required"`
	TemplateType string `yaml:"template_type"`
	Location     string `yaml:"location"`
	Description  string `yaml:"description"`
}

func (l *Lab) applyDefaults() {
	if l.Workspace.TemplateType == "" {
		l.Workspace.TemplateType = DefaultTemplateType
	}
	if l.Workspace.Location == "" {
		l.Workspace.Location = DefaultLocation
	}
	if l.Workspace.Description == "" {
		l.Workspace.Description = DefaultDescription
	}
}

// Validate checks the lab definition.
func (l Lab) Validate() error {
	return convertValidationError(validatorInstance().Struct(l))
}

const labImageBase = "https://s3.us-east.cloud-object-storage.appdomain.cloud/vcfaas-lab-images/"

func builtinLabs() []Lab {
	return []Lab{
		{
			Name:    "petclinic",
			Catalog: "PetClinic",
			Items: []LabItem{
				{Name: "ibm-vcfaas-lab-apache2", Source: labImageBase + "ibm-vcfaas-lab-apache2.ovf"},
				{Name: "ibm-vcfaas-lab-mysql", Source: labImageBase + "ibm-vcfaas-lab-mysql.ovf"},
				{Name: "ibm-vcfaas-lab-tomcat", Source: labImageBase + "ibm-vcfaas-lab-tomcat.ovf"},
			},
			Workspace: LabWorkspace{
				Name:       "petclinic",
				Repository: "https://github.com/IBM/vmware-l4-automation.git",
				Folder:     "petclinic",
			},
		},
	}
}

// Registry is the read-only set of known labs.
type Registry struct {
	labs map[string]Lab
}

// NewRegistry builds a registry from labs. Later entries replace earlier ones
// with the same name.
func NewRegistry(labs ...Lab) (*Registry, error) {
	r := &Registry{labs: make(map[string]Lab, len(labs))}
	for i := range labs {
		lab := labs[i]
		lab.Items = slices.Clone(lab.Items)
		lab.applyDefaults()
		if err := lab.Validate(); err != nil {
			return nil, fmt.Errorf("lab %q: %w", lab.Name, err)
		}
		r.labs[lab.Name] = lab
	}
	return r, nil
}

// DefaultRegistry returns the registry of built-in labs.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(builtinLabs()...)
	if err != nil {
		panic(fmt.Sprintf("built-in labs are invalid: %v", err))
	}
	return r
}

type labsFile struct {
	Labs []Lab `yaml:"labs"`
}

// LoadRegistry returns the built-in labs merged with the labs defined in the
// YAML file at path. An empty path yields the built-in registry.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labs file: %w", err)
	}

	var file labsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal labs file: %w", err)
	}
	if len(file.Labs) == 0 {
		return nil, fmt.Errorf("labs file %s defines no labs", path)
	}

	return NewRegistry(append(builtinLabs(), file.Labs...)...)
}

// Lookup returns a copy of the named lab.
func (r *Registry) Lookup(name string) (Lab, error) {
	lab, ok := r.labs[name]
	if !ok {
		return Lab{}, fmt.Errorf("%w %q (known: %v)", ErrUnknownLab, name, r.Names())
	}
	lab.Items = slices.Clone(lab.Items)
	return lab, nil
}

// Names returns the registered lab names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.labs))
	for name := range r.labs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
