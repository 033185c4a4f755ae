package flow

import (
	"context"
	"errors"
	"math"

	"quizora-cli/internal/api"
	"quizora-cli/internal/domain"
)

// ResultAPI is the slice of the gateway the result view needs.
type ResultAPI interface {
	FetchAttempt(ctx context.Context, code string) (domain.AttemptResult, error)
}

const fallbackResult = "Failed to load quiz result. Please try again."

// LoadResult fetches the recorded attempt for a quiz code.
func LoadResult(ctx context.Context, gw ResultAPI, code string) (domain.AttemptResult, error) {
	return gw.FetchAttempt(ctx, NormalizeCode(code))
}

// ResultFallback is the generic message when loading an attempt fails
// without a backend explanation.
func ResultFallback(err error) string {
	return ErrorMessage(err, fallbackResult)
}

// Percentage converts a score into a rounded percent; a zero total
// yields 0 rather than dividing by zero.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// ErrorMessage extracts the backend's error payload when present,
// otherwise the given fallback. Transport errors have no payload and
// always fall back.
func ErrorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
