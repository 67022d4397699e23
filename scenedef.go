package legoland

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// SceneDef is a declarative description of a space's contents, typically
// loaded from YAML. Objects are inserted in order; an object with Snapshot
// set closes the scene right after its insertion.
type SceneDef struct {
	Name    string      `yaml:"name,omitempty"`
	Objects []ObjectDef `yaml:"objects"`
}

// ObjectDef defines one object instantiation. Base coordinates and sizes
// are in the caller-facing width/height/depth order.
type ObjectDef struct {
	Type   string    `yaml:"type"` // "cube", "cuboid", or "composite"
	Base   []float64 `yaml:"base"`
	Scale  float64   `yaml:"scale,omitempty"`  // cube side length, default 1
	Size   []float64 `yaml:"size,omitempty"`   // cuboid dimensions
	Counts []int     `yaml:"counts,omitempty"` // composite cube counts
	Name   string    `yaml:"name,omitempty"`
	Style  string    `yaml:"style,omitempty"`

	FaceColor string   `yaml:"facecolor,omitempty"`
	EdgeColor string   `yaml:"edgecolor,omitempty"`
	LineWidth *float64 `yaml:"linewidth,omitempty"`
	Alpha     *float64 `yaml:"alpha,omitempty"`

	Snapshot bool `yaml:"snapshot,omitempty"`
}

// LoadSceneDef reads and parses a YAML scene definition from disk.
func LoadSceneDef(path string) (*SceneDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSceneDef(data)
}

// ParseSceneDef parses a YAML scene definition.
func ParseSceneDef(data []byte) (*SceneDef, error) {
	var def SceneDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing scene definition: %w", err)
	}
	return &def, nil
}

// BuildSpace inserts every object of the definition into a fresh space.
func BuildSpace(def *SceneDef) (*Space, error) {
	space := NewSpace()
	for i, obj := range def.Objects {
		if err := addObject(space, obj); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if obj.Snapshot {
			if err := space.Snapshot(); err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
		}
	}
	return space, nil
}

func addObject(space *Space, obj ObjectDef) error {
	if len(obj.Base) != 3 {
		return fmt.Errorf("%w: base has %d components", ErrMalformedCoordinate, len(obj.Base))
	}
	base := mgl64.Vec3{obj.Base[0], obj.Base[1], obj.Base[2]}

	switch obj.Type {
	case "cube":
		scale := obj.Scale
		if scale == 0 {
			scale = 1
		}
		cube := NewCube(base, scale)
		cube.Name = obj.Name
		applyVisualOverrides(&cube.FaceColor, &cube.EdgeColor, &cube.LineWidth, &cube.Alpha, obj)
		return space.AddCube(cube)

	case "cuboid":
		if len(obj.Size) != 3 {
			return fmt.Errorf("%w: cuboid size has %d components", ErrMalformedCoordinate, len(obj.Size))
		}
		cuboid := NewCuboid(base, obj.Size[0], obj.Size[1], obj.Size[2])
		cuboid.Name = obj.Name
		applyVisualOverrides(&cuboid.FaceColor, &cuboid.EdgeColor, &cuboid.LineWidth, &cuboid.Alpha, obj)
		return space.AddCuboid(cuboid)

	case "composite":
		if len(obj.Counts) != 3 {
			return fmt.Errorf("%w: composite counts has %d components", ErrMalformedCoordinate, len(obj.Counts))
		}
		composite := NewCompositeCube(base, obj.Counts[0], obj.Counts[1], obj.Counts[2])
		composite.Name = obj.Name
		if obj.Style != "" {
			composite.StyleName = obj.Style
		}
		applyVisualOverrides(&composite.FaceColor, &composite.EdgeColor, &composite.LineWidth, &composite.Alpha, obj)
		return space.AddComposite(composite)

	default:
		return fmt.Errorf("unknown object type %q", obj.Type)
	}
}

func applyVisualOverrides(faceColor, edgeColor *string, lineWidth, alpha *float64, obj ObjectDef) {
	if obj.FaceColor != "" {
		*faceColor = obj.FaceColor
	}
	if obj.EdgeColor != "" {
		*edgeColor = obj.EdgeColor
	}
	if obj.LineWidth != nil {
		*lineWidth = *obj.LineWidth
	}
	if obj.Alpha != nil {
		*alpha = *obj.Alpha
	}
}
