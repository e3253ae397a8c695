// Command galasm compiles GAL-family PLD source files into JEDEC
// fuse maps, plus the .chp/.pin/.fus side reports describing them.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	galasm "github.com/sprice/galasm"
	"github.com/sprice/galasm/internal/blueprint"
	"github.com/sprice/galasm/internal/chip"
	"github.com/sprice/galasm/internal/errs"
	"github.com/sprice/galasm/internal/gal"
	"github.com/sprice/galasm/internal/jed"
	"github.com/sprice/galasm/internal/lang"
	"github.com/sprice/galasm/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var secure, noChip, noFuse, noPin bool

	cmd := &cobra.Command{
		Use:           "galasm <file.pld>",
		Short:         "Assemble GAL-family PLD source into a JEDEC fuse map",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], buildOptions{
				Secure: secure,
				NoChip: noChip,
				NoFuse: noFuse,
				NoPin:  noPin,
			})
		},
	}

	cmd.Flags().BoolVarP(&secure, "secure", "s", false, "set the JEDEC security bit")
	cmd.Flags().BoolVarP(&noChip, "nochip", "c", false, "suppress .chp chip-drawing output")
	cmd.Flags().BoolVarP(&noFuse, "nofuse", "f", false, "suppress .fus fuse-matrix output")
	cmd.Flags().BoolVarP(&noPin, "nopin", "p", false, "suppress .pin pin-table output")

	cmd.AddCommand(newDevicesCmd(), newVersionCmd())
	return cmd
}

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List supported chip mnemonics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range []chip.Kind{chip.GAL16V8, chip.GAL20V8, chip.GAL22V10, chip.GAL20RA10} {
				fmt.Fprintln(cmd.OutOrStdout(), k.Name())
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), galasm.Version())
			return nil
		},
	}
}

type buildOptions struct {
	Secure bool
	NoChip bool
	NoFuse bool
	NoPin  bool
}

func runBuild(path string, opts buildOptions) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	name := filepath.Base(path)

	content, bp, g, err := compile(src)
	if err != nil {
		diagnose(name, err)
		return err
	}

	header := []string{
		fmt.Sprintf("Used Program:   galasm %s", galasm.Version()),
		fmt.Sprintf("GAL-Assembler:  galasm %s", galasm.Version()),
		fmt.Sprintf("Device:         %s", content.Chip.Name()),
	}
	jedText := jed.Write(jed.Config{SecurityBit: opts.Secure, Header: header}, g)
	if err := os.WriteFile(base+".jed", []byte(jedText), 0o644); err != nil {
		return err
	}

	if !opts.NoChip {
		if err := os.WriteFile(base+".chp", []byte(report.Chip(content.Chip, content.PinNames)), 0o644); err != nil {
			return err
		}
	}
	if !opts.NoPin {
		pinText := report.PinTable(content.Chip, content.PinNames, g.Mode(), bp.OLMC)
		if err := os.WriteFile(base+".pin", []byte(pinText), 0o644); err != nil {
			return err
		}
	}
	if !opts.NoFuse {
		if err := os.WriteFile(base+".fus", []byte(report.FuseMatrix(g)), 0o644); err != nil {
			return err
		}
	}

	return nil
}

func compile(src []byte) (lang.Content, blueprint.Blueprint, *gal.GAL, error) {
	content, err := lang.Parse(src)
	if err != nil {
		return lang.Content{}, blueprint.Blueprint{}, nil, err
	}
	bp, err := blueprint.Build(content)
	if err != nil {
		return lang.Content{}, blueprint.Blueprint{}, nil, err
	}
	g, err := gal.Build(bp)
	if err != nil {
		return lang.Content{}, blueprint.Blueprint{}, nil, err
	}
	return content, bp, g, nil
}

// diagnose prints the single-line stderr diagnostic the CLI surface
// promises: <source-filename>: Error in line <N>: <message>
func diagnose(name string, err error) {
	if e, ok := err.(*errs.Error); ok {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, e.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
}
