package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quizora-cli/internal/domain"
	"quizora-cli/internal/stubserver"
)

func newStubCmd() *cobra.Command {
	var addr, secret string
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local stub backend for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStub(cmd.Context(), addr, secret)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&secret, "secret", "quizora-dev-secret", "HMAC secret for issued tokens")
	return cmd
}

func runStub(ctx context.Context, addr, secret string) error {
	stub := stubserver.New(secret)
	stub.SeedUser("Admin", "admin@quizora.dev", "admin123", domain.RoleAdmin)
	stub.SeedUser("Student", "student@quizora.dev", "student123", "USER")
	stub.SeedQuiz(sampleQuiz())

	server := &http.Server{
		Addr:         addr,
		Handler:      stub.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("stub backend listening on %s (admin@quizora.dev/admin123, student@quizora.dev/student123)", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start stub backend: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down stub backend...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down stub backend...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func sampleQuiz() domain.CreateQuizRequest {
	return domain.CreateQuizRequest{
		Code:        "DEMO01",
		Title:       "Quizora demo quiz",
		Description: "A short quiz to try the client against the stub backend.",
		Questions: []domain.CreateQuestionRequest{
			{
				QuestionText:       "What is 2 + 2?",
				Options:            []string{"3", "4", "5"},
				CorrectAnswerIndex: 1,
				Points:             1,
			},
			{
				QuestionText:       "Which planet is known as the Red Planet?",
				Options:            []string{"Venus", "Jupiter", "Mars"},
				CorrectAnswerIndex: 2,
				Points:             1,
			},
		},
	}
}
