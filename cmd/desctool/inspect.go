package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/loomlang/descriptor-loader/metadata"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Print container headers without decoding payloads",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styled := term.IsTerminal(int(os.Stdout.Fd()))
			for i, path := range args {
				if i > 0 {
					fmt.Println()
				}
				if err := inspect(path, styled); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func inspect(path string, styled bool) error {
	fc, err := metadata.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	h := fc.ClassHeader()

	render := func(s lipgloss.Style, text string) string {
		if styled {
			return s.Render(text)
		}
		return text
	}

	fmt.Printf("%s  %s\n", render(labelStyle, "file    "), path)
	fmt.Printf("%s  %s\n", render(labelStyle, "id      "), fc.ID())
	fmt.Printf("%s  %s\n", render(labelStyle, "kind    "), h.Kind)
	fmt.Printf("%s  %s\n", render(labelStyle, "version "), h.Version)

	compat := render(okStyle, "compatible")
	if !h.IsCompatible() {
		compat = render(badStyle,
			fmt.Sprintf("incompatible (reader is %s)", metadata.CurrentABIVersion))
	}
	fmt.Printf("%s  %s\n", render(labelStyle, "abi     "), compat)
	fmt.Printf("%s  %d bytes\n", render(labelStyle, "payload "), len(h.Payload))
	return nil
}
