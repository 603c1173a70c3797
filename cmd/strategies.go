package cmd

import (
	"fmt"
	"strconv"

	"github.com/saltyorg/sb-exec/internal/styles"
	"github.com/saltyorg/sb-exec/internal/tty"

	"github.com/aquasecurity/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// strategiesCmd represents the strategies command
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List execution mechanisms in priority order",
	Long:  `List execution mechanisms in priority order. A mechanism is selected when it is available and allowed by the deny-list.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		e, err := s.newExecutor(cmd)
		if err != nil {
			return err
		}

		selected, selectErr := e.Select()
		plain := !tty.IsInteractive()

		t := table.New(cmd.OutOrStdout())
		t.SetHeaders("Priority", "Mechanism", "Available", "Allowed", "Selected")
		t.SetBorders(true)
		t.SetDividers(table.UnicodeRoundedDividers)
		t.SetPadding(1)
		t.SetColumnMaxWidth(tty.Width())
		if !plain {
			t.SetHeaderStyle(table.StyleBold)
			t.SetLineStyle(table.StyleBlue)
		} else {
			t.SetHeaderStyle(table.StyleNormal)
			t.SetLineStyle(table.StyleNormal)
		}

		for i, strategy := range e.Strategies() {
			m := strategy.Mechanism()
			t.AddRow(
				strconv.Itoa(i+1),
				string(m),
				styles.Status(strategy.Available(), plain),
				styles.Status(!e.Denied(m), plain),
				selectedMark(selectErr == nil && selected.Mechanism() == m),
			)
		}
		t.Render()

		const label = "Deny-list"
		// truncate before styling so escape codes do not count towards the width
		names := runewidth.Truncate(e.DenyList().String(), tty.Width()-len(label)-2, "...")
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), styles.Field(label, names, "(empty)", plain)); err != nil {
			return err
		}

		if selectErr != nil {
			msg := "No usable mechanism: all execution mechanisms disabled"
			if !plain {
				msg = styles.WarningStyle.Render(msg)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func selectedMark(selected bool) string {
	if selected {
		return "*"
	}
	return ""
}
