package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quizora-cli/internal/authoring"
	"quizora-cli/internal/domain"
	"quizora-cli/internal/flow"
)

func newCreateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new quiz (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if err := e.requireAuth(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !e.session.IsAdmin() {
				// Blocked before any request goes out.
				fmt.Fprintln(out, "Access denied: only administrators can create quizzes.")
				fmt.Fprintln(out, "If you believe this is an error, contact your administrator.")
				return domain.ErrNotAdmin
			}

			var draft authoring.Draft
			if file != "" {
				draft, err = authoring.LoadDraftFile(file)
				if err != nil {
					return err
				}
			} else {
				draft = composeDraft(newPrompter(cmd.InOrStdin(), out), out)
			}

			req, err := authoring.BuildRequest(draft)
			if err != nil {
				return err
			}

			quiz, err := e.api.CreateQuiz(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s", flow.ErrorMessage(err, "Failed to create quiz. You may not have permission."))
			}
			fmt.Fprintf(out, "Quiz created successfully. Code: %s\n", quiz.Code)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file describing the quiz")
	return cmd
}

// composeDraft walks through the authoring form interactively. All edits
// go through the pure draft operations, so partial input never corrupts
// the draft.
func composeDraft(p *prompter, out io.Writer) authoring.Draft {
	draft := authoring.NewDraft()
	draft.Code = p.Line("Quiz code (unique)")
	draft.Title = p.Line("Title")
	draft.Description = p.Line("Description (optional)")

	for i := 0; ; i++ {
		if i > 0 {
			draft = authoring.AddQuestion(draft)
		}
		fmt.Fprintf(out, "\nQuestion %d\n", i+1)
		draft = authoring.SetQuestionText(draft, i, p.Line("Question text"))

		for j := 0; ; j++ {
			if j >= 2 {
				if !p.Confirm("Add another option?") {
					break
				}
				draft = authoring.AddOption(draft, i)
			}
			draft = authoring.SetOption(draft, i, j, p.Line(fmt.Sprintf("Option %d", j+1)))
		}
		if n, ok := p.Number("Correct option (1-based)"); ok {
			draft = authoring.SetCorrectAnswer(draft, i, n-1)
		}
		if n, ok := p.Number("Points (default 1)"); ok {
			draft = authoring.SetPoints(draft, i, n)
		}

		if !p.Confirm("Add another question?") {
			return draft
		}
	}
}
