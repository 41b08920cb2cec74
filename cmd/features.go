package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vzahanych/rain-prediction-app/internal/features"
)

func featuresCmd() *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Describe the model inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if explain {
				e := features.Explain()
				fmt.Fprintln(out, e.Intro)
				fmt.Fprintln(out)
				for i, s := range e.Sections {
					fmt.Fprintf(out, "%d. %s: %s\n\n", i+1, s.Title, s.Body)
				}
				fmt.Fprintln(out, e.Summary)
				return nil
			}

			for _, entry := range features.Glossary() {
				fmt.Fprintf(out, "%s: %s\n", entry.Name, entry.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "explain how the model turns features into a prediction")

	return cmd
}
