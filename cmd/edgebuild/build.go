package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edge-suite/edgebuild/pkg/builder"
	"github.com/edge-suite/edgebuild/pkg/config"
	"github.com/edge-suite/edgebuild/pkg/display"
	"github.com/edge-suite/edgebuild/pkg/filesystem"
	"github.com/edge-suite/edgebuild/pkg/libraries"
	"github.com/edge-suite/edgebuild/pkg/paths"
	"github.com/edge-suite/edgebuild/pkg/style"
)

func newBuildCmd() *cobra.Command {
	var (
		replace       bool
		overwriteLibs bool
		output        string
	)

	cmd := &cobra.Command{
		Use:   "build <archive> <destination>",
		Short: "Build a composition archive into the projects directory",
		Long: `Build extracts the zipped composition export, rewrites its entry and
preloader scripts for the hosting runtime, reconciles the bundled
libraries against the shared store and moves the permitted assets into
<projects>/<destination>.`,
		Example: `  edgebuild build demo.zip demo
  edgebuild build --replace demo.zip demo
  edgebuild build --output yaml demo.zip demo`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := display.ParseFormat(output)
			if err != nil {
				return err
			}
			if format == display.FormatAuto {
				format = display.DetectFormat(os.Stdout)
			}

			configPath, _ := cmd.Root().PersistentFlags().GetString("config")
			b, err := newBuilder(configPath)
			if err != nil {
				return err
			}

			result, buildErr := b.Build(builder.Options{
				Archive:            args[0],
				Destination:        args[1],
				Replace:            replace,
				OverwriteLibraries: overwriteLibs,
			})

			// The partial result carries the report lines gathered
			// before a failure, so render it either way.
			rendered, renderErr := display.NewRenderer(format).RenderResult(result)
			if renderErr != nil {
				return renderErr
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)

			if buildErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), style.ErrorStyle.Render("Error: ")+buildErr.Error())
			}
			return buildErr
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing project at the destination")
	cmd.Flags().BoolVar(&overwriteLibs, "overwrite-libs", false, "Overwrite conflicting libraries in the shared store")
	cmd.Flags().StringVarP(&output, "output", "o", "auto", "Output format: auto, term, text or yaml")

	return cmd
}

// newBuilder assembles the pipeline from the effective configuration
func newBuilder(configPath string) (*builder.Builder, error) {
	if configPath == "" {
		defaults, err := paths.New("")
		if err != nil {
			return nil, err
		}
		configPath = defaults.ConfigFilePath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()

	storeDir := cfg.LibraryDir
	if storeDir == "" {
		storeDir = p.LibraryStoreDir()
	}
	store := libraries.NewDirStore(fsys, storeDir)

	return builder.New(fsys, cfg, p, store), nil
}
