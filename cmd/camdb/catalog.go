package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/use-go/camdrv"
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List brands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := capability.Brands()
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), list)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tMODELS\tEXTERNAL")
		for _, b := range list {
			fmt.Fprintf(w, "%s\t%d\t%t\n", b.Name, b.Models, b.External)
		}
		return w.Flush()
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models <brand>",
	Short: "List the models of a brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		brand, err := capability.BrandByName(args[0])
		if err != nil {
			return err
		}
		list, err := capability.Models(brand)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), list)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MODEL\tDIALECT\tGROUP\tPROFILES")
		for _, m := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.Name, m.Dialect, m.Group(), m.Profiles)
		}
		return w.Flush()
	},
}

// camera resolves a model name to the camera of its brand
func camera(name string) (camdrv.Camera, capability.ModelInfo, error) {
	id, err := capability.ByName(name)
	if err != nil {
		return camdrv.Camera{}, capability.ModelInfo{}, err
	}
	m, err := capability.Info(id)
	if err != nil {
		return camdrv.Camera{}, capability.ModelInfo{}, err
	}
	return camdrv.Camera{Brand: m.Brand, Model: id}, m, nil
}

func codecList(mask core.CodecMask) string {
	var names []string
	for _, c := range mask.List() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}

var infoCmd = &cobra.Command{
	Use:   "info <model>",
	Short: "Show the capabilities of a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, m, err := camera(args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), m)
		}

		lo, hi := m.BitrateRange()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "model\t%s\n", m.Name)
		fmt.Fprintf(w, "dialect\t%s\n", m.Dialect)
		fmt.Fprintf(w, "group\t%s\n", m.Group())
		fmt.Fprintf(w, "profiles\t%d\n", m.Profiles)
		fmt.Fprintf(w, "main codecs\t%s\n", codecList(m.Codecs(core.StreamMain)))
		fmt.Fprintf(w, "sub codecs\t%s\n", codecList(m.Codecs(core.StreamSub)))
		fmt.Fprintf(w, "bitrate\t%d..%d\n", lo, hi)
		fmt.Fprintf(w, "motion\t%s %dx%d\n", m.Motion, m.MotionGrid.Rows, m.MotionGrid.Cols)
		fmt.Fprintf(w, "privacy\t%s, %d windows\n", m.Privacy, m.MaxPrivacyWindows)
		fmt.Fprintf(w, "capabilities\t%s\n", strings.Join(m.Bits().Names(), " "))
		return w.Flush()
	},
}
