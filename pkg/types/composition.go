package types

// Unit is the measurement unit of a stage dimension
type Unit string

const (
	UnitPixel   Unit = "px"
	UnitPercent Unit = "%"
)

// Dimension is a single stage dimension value with its unit.
// A zero Dimension (empty value) means the value was never extracted.
type Dimension struct {
	Value string `yaml:"value"`
	Unit  Unit   `yaml:"unit"`
}

// IsSet reports whether the dimension was populated from the entry script
func (d Dimension) IsSet() bool {
	return d.Value != ""
}

// String renders the dimension the way the authoring tool writes it, e.g. "600px"
func (d Dimension) String() string {
	if !d.IsSet() {
		return ""
	}
	return d.Value + string(d.Unit)
}

// DimensionSet holds the six recognized stage dimensions.
// Dimensions not present in the entry script keep their zero value.
type DimensionSet struct {
	Width     Dimension `yaml:"width"`
	Height    Dimension `yaml:"height"`
	MinWidth  Dimension `yaml:"minWidth"`
	MaxWidth  Dimension `yaml:"maxWidth"`
	MinHeight Dimension `yaml:"minHeight"`
	MaxHeight Dimension `yaml:"maxHeight"`
}

// IsEmpty reports whether no dimension was extracted at all
func (s DimensionSet) IsEmpty() bool {
	return !s.Width.IsSet() && !s.Height.IsSet() &&
		!s.MinWidth.IsSet() && !s.MaxWidth.IsSet() &&
		!s.MinHeight.IsSet() && !s.MaxHeight.IsSet()
}

// Composition is the unit of work for one pipeline run. It is created by
// the structure validator and enriched by the later stages; it never
// outlives the run.
type Composition struct {
	// Name is the project name derived from the entry script basename.
	// Immutable once derived; matches ^[A-Za-z0-9_-]*$.
	Name string `yaml:"name"`

	// WorkDir is the directory holding the entry script inside the
	// extraction tree. All later stages operate on this subtree.
	WorkDir string `yaml:"-"`

	// EntryScript is the absolute path of <name>_edge.js
	EntryScript string `yaml:"-"`

	// PreloaderScript is the absolute path of <name>_edgePreload.js,
	// empty when the archive ships without one.
	PreloaderScript string `yaml:"-"`

	// StageID is the composition identifier extracted from the entry script
	StageID string `yaml:"stageId"`

	// RuntimeVersion is the semantic-version-like runtime version,
	// empty when neither library names nor the companion document yield one
	RuntimeVersion string `yaml:"runtimeVersion"`

	// Dimensions holds the extracted stage dimensions
	Dimensions DimensionSet `yaml:"dimensions"`

	// Libraries lists every runtime library filename the archive shipped,
	// regardless of whether the shared store kept or discarded it
	Libraries []string `yaml:"libraries"`
}

// HasPreloader reports whether a preloader script was found next to the entry script
func (c *Composition) HasPreloader() bool {
	return c.PreloaderScript != ""
}
