package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polyglotkit/polyglot/detect"
)

// NewLanguagesCommand prints the supported languages, one canonical name
// per line in lexicographic order.
func NewLanguagesCommand() *cobra.Command {
	var filter string

	languagesCommand := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			switch filter {
			case "", "all":
				names = detect.Languages()
			case "spoken":
				names = detect.SpokenLanguages()
			case "arabic":
				names = detect.LanguagesWithArabicScript()
			case "cyrillic":
				names = detect.LanguagesWithCyrillicScript()
			case "devanagari":
				names = detect.LanguagesWithDevanagariScript()
			case "latin":
				names = detect.LanguagesWithLatinScript()
			case "unique":
				names = detect.LanguagesWithSingleUniqueScript()
			default:
				return fmt.Errorf("unknown language filter: %q", filter)
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	languagesCommand.Flags().StringVarP(&filter, "filter", "f", "all", "Filter: all, spoken, arabic, cyrillic, devanagari, latin, unique")
	return languagesCommand
}
