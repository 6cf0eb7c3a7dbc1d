package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/guard"
	"github.com/centsible/centsible/internal/model"
)

func validateCmd() *cobra.Command {
	var aiForm bool

	cmd := &cobra.Command{
		Use:   "validate [message...]",
		Short: "Check a candidate message against the content guardrails",
		Long: `Run a message through the validator that gates all user-facing copy.

By default the strict short-form rulebook for nudge copy applies; pass
--ai to use the looser long-form rulebook for AI responses.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			var result model.ValidationResult
			if aiForm {
				result = guard.ValidateAIResponse(text)
			} else {
				result = guard.ValidateMessage(text)
			}

			if result.IsValid {
				fmt.Println(cli.SuccessStyle.Render("Valid: message passes all guardrails."))
				return nil
			}

			fmt.Println(cli.ErrorStyle.Render("Invalid:"))
			for _, v := range result.Violations {
				fmt.Printf("  - %s\n", v)
			}

			if result.ShouldBlock {
				fmt.Println(cli.WarningStyle.Render("Message is blocked; violations cannot be auto-corrected."))
				if aiForm {
					responder := guard.NewResponder()
					fmt.Printf("Fallback: %s\n", responder.FallbackResponse(""))
				}
				return nil
			}

			fmt.Printf("Sanitized: %s\n", cli.InfoStyle.Render(result.Sanitized))
			return nil
		},
	}

	cmd.Flags().BoolVar(&aiForm, "ai", false, "Use the long-form AI response rulebook")

	return cmd
}
