package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/radiobridge/radiobridge/pkg/radios"
)

var radiosCmd = &cobra.Command{
	Use:   "radios",
	Short: "List supported radios and their software versions",
	Run: func(cmd *cobra.Command, args []string) {
		nameStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))
		dimStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

		for _, f := range registry.Formatters() {
			p := f.Profile()
			fmt.Println(nameStyle.Render(f.Name()))
			fmt.Printf("  %s\n", f.Description())
			fmt.Printf("  Key:      %s\n", p.Key)
			fmt.Printf("  Firmware: %s\n", p.SupportedVersions(radios.AxisFirmware))
			fmt.Printf("  CPS:      %s\n", p.SupportedVersions(radios.AxisCPS))
			if _, ok := f.(radios.ZoneFormatter); ok {
				fmt.Println(dimStyle.Render("  Supports zone files"))
			}
			fmt.Println("")
		}
	},
}
