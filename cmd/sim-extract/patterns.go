package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Print the active marker patterns as YAML",
	Long: `Patterns prints the marker vocabulary the parser will use, after
applying overrides from the config file and an optional patterns file.
Save the output, edit it, and pass it back with --patterns to adapt the
extractor to a changed log format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		patternsFile, _ := cmd.Flags().GetString("patterns")

		pats, err := loadPatterns(patternsFile)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(pats)
		if err != nil {
			return fmt.Errorf("marshaling patterns: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	patternsCmd.Flags().String("patterns", "", "YAML file overriding the marker patterns")

	rootCmd.AddCommand(patternsCmd)
}
