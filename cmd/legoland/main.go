package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	legoland "github.com/danielsoutar/legoland"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "legoland",
	Short: "Inspect spaces built from YAML scene definitions",
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <scene.yaml>",
	Short: "Build a space from a scene definition and print its state",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var validateCmd = &cobra.Command{
	Use:   "validate <scene.yaml>",
	Short: "Check that a scene definition builds cleanly",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on the built space")
	rootCmd.AddCommand(inspectCmd, validateCmd)
}

func buildFromFile(path string) (*legoland.Space, error) {
	def, err := legoland.LoadSceneDef(path)
	if err != nil {
		return nil, err
	}
	space, err := legoland.BuildSpace(def)
	if err != nil {
		return nil, err
	}
	if debug {
		space.SetLogger(legoland.NewDefaultLogger(space.ID(), true))
	}
	return space, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	space, err := buildFromFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("space %s\n", space.ID())
	fmt.Printf("  objects:    %d\n", space.NumObjects())
	fmt.Printf("  primitives: %d\n", space.PrimitiveCount())
	fmt.Printf("  timesteps:  %d\n", space.TimeStep())
	fmt.Printf("  scenes:     %d closed\n", space.SceneCount())

	dims := space.Dims()
	mean := space.Mean()
	fmt.Printf("  dims: min=(%.3f, %.3f, %.3f) max=(%.3f, %.3f, %.3f)\n",
		dims.Min.X(), dims.Min.Y(), dims.Min.Z(),
		dims.Max.X(), dims.Max.Y(), dims.Max.Z())
	fmt.Printf("  mean: (%.3f, %.3f, %.3f)\n", mean.X(), mean.Y(), mean.Z())

	for _, frame := range space.RenderView() {
		fmt.Printf("  scene %d: %d primitives, %d composites\n",
			frame.SceneID, len(frame.Primitives), len(frame.Composites))
		for _, id := range frame.Primitives {
			fmt.Printf("    primitive %d\n", id)
		}
		for _, r := range frame.Composites {
			fmt.Printf("    composite [%d, %d)\n", r.Start, r.Stop)
		}
	}

	fmt.Printf("  changelog: %d entries\n", len(space.Changes()))
	for _, change := range space.Changes() {
		switch entry := change.(type) {
		case legoland.Addition:
			if entry.Name != "" {
				fmt.Printf("    t=%d addition %q\n", entry.Timestep, entry.Name)
			} else {
				fmt.Printf("    t=%d addition\n", entry.Timestep)
			}
		case legoland.Mutation:
			fmt.Printf("    mutation (name=%q t=%d scene=%d)\n", entry.Name, entry.Timestep, entry.SceneID)
		case legoland.Deletion:
			fmt.Printf("    t=%d deletion %q\n", entry.Timestep, entry.Name)
		}
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	space, err := buildFromFile(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d objects, %d primitives, %d scenes\n",
		space.NumObjects(), space.PrimitiveCount(), space.SceneCount())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
