package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hulondalo/warta/internal/sector"
)

// newClassifyCommand builds the classify command, a debugging aid for the
// keyword rules.
func newClassifyCommand() *cobra.Command {
	var hintFlag string

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify a piece of text into a BPS sector code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			classifier, err := d.buildClassifier()
			if err != nil {
				return err
			}

			code := classifier.Classify(strings.Join(args, " "), hintFlag)
			fmt.Printf("%s\t%s\n", code, sector.Label(code))
			return nil
		},
	}

	cmd.Flags().StringVar(&hintFlag, "hint", "", "pre-extracted category hint")

	return cmd
}
