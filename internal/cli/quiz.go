package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quizora-cli/internal/domain"
	"quizora-cli/internal/flow"
)

func newEnterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enter [code]",
		Short: "Enter a quiz code and start or review the quiz",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if err := e.requireAuth(); err != nil {
				return err
			}

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				raw = p.Line("Quiz code")
			}

			outcome := flow.EnterCode(cmd.Context(), e.api, raw)
			switch outcome.Route {
			case flow.RouteResult:
				return runResult(cmd.Context(), cmd.OutOrStdout(), e, outcome.Code)
			case flow.RouteTake:
				return runTake(cmd.Context(), p, cmd.OutOrStdout(), e, outcome.Code)
			default:
				return fmt.Errorf("%s", outcome.Message)
			}
		},
	}
}

func newTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <code>",
		Short: "Take the quiz with the given code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if err := e.requireAuth(); err != nil {
				return err
			}
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return runTake(cmd.Context(), p, cmd.OutOrStdout(), e, args[0])
		},
	}
}

func newResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <code>",
		Short: "Show your result for the quiz with the given code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv()
			if err != nil {
				return err
			}
			if err := e.requireAuth(); err != nil {
				return err
			}
			return runResult(cmd.Context(), cmd.OutOrStdout(), e, args[0])
		},
	}
}

func runTake(ctx context.Context, p *prompter, out io.Writer, e *env, code string) error {
	taking := flow.NewTaking(e.api, code)
	switch taking.Load(ctx) {
	case flow.StateAlreadyAttempted:
		fmt.Fprintln(out, "You have already attempted this quiz.")
		return runResult(ctx, out, e, taking.Code())
	case flow.StateNotFound:
		return fmt.Errorf("%s", taking.Message())
	}

	quiz := taking.Quiz()
	fmt.Fprintf(out, "\n%s\n", quiz.Title)
	if quiz.Description != "" {
		fmt.Fprintln(out, quiz.Description)
	}

	for i, question := range quiz.Questions {
		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", i+1, len(quiz.Questions), question.QuestionText)
		for j, option := range question.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, option)
		}
		askAnswer(p, out, taking, question)
	}

	state, err := taking.Submit(ctx, func(unanswered int) bool {
		return p.Confirm(fmt.Sprintf("You have %d unanswered question(s). Do you want to submit anyway?", unanswered))
	})
	if err != nil {
		return err
	}
	switch state {
	case flow.StateReady:
		fmt.Fprintln(out, "Submission cancelled.")
		return nil
	case flow.StateSubmitFailed:
		return fmt.Errorf("%s", taking.Message())
	}

	result := taking.Result()
	fmt.Fprintln(out, "\nQuiz submitted successfully!")
	if result.IsRetake {
		fmt.Fprintln(out, "You had already attempted this quiz; your original score stands.")
	}
	printScore(out, result.Score, result.TotalMarks)
	return nil
}

// askAnswer keeps prompting until a valid option is chosen or the
// question is skipped with blank input.
func askAnswer(p *prompter, out io.Writer, taking *flow.Taking, question domain.Question) {
	for {
		n, ok := p.Number(fmt.Sprintf("Answer (1-%d, blank to skip)", len(question.Options)))
		if !ok {
			return
		}
		if err := taking.SelectAnswer(question.ID, n-1); err != nil {
			fmt.Fprintf(out, "Please choose an option between 1 and %d.\n", len(question.Options))
			continue
		}
		return
	}
}

func runResult(ctx context.Context, out io.Writer, e *env, code string) error {
	attempt, err := flow.LoadResult(ctx, e.api, code)
	if err != nil {
		return fmt.Errorf("%s", flow.ResultFallback(err))
	}

	fmt.Fprintln(out, "\nQuiz Results")
	printScore(out, attempt.Score, attempt.TotalMarks)
	fmt.Fprintf(out, "Attempted on: %s\n", attempt.AttemptedAt.Local().Format("2 Jan 2006 15:04"))
	return nil
}

func printScore(out io.Writer, score, total int) {
	fmt.Fprintf(out, "Score: %d out of %d marks (%d%%)\n", score, total, flow.Percentage(score, total))
}
