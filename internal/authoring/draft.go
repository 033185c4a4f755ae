package authoring

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"quizora-cli/internal/domain"
)

var (
	// ErrMissingCodeOrTitle is the submit-time check for the required fields.
	ErrMissingCodeOrTitle = errors.New("quiz code and title are required")
	// ErrNoValidQuestions means every question was dropped by validation.
	ErrNoValidQuestions = errors.New("add at least one question with at least two options")
)

// QuestionDraft is one question being composed. Option count and text
// are only enforced at submit time, never while editing.
type QuestionDraft struct {
	Text               string   `yaml:"text"`
	Options            []string `yaml:"options"`
	CorrectAnswerIndex int      `yaml:"correct"`
	Points             int      `yaml:"points"`
}

// Draft is a quiz being composed: an ordered question list edited by
// pure wholesale-replace operations, so every edit yields a new value
// and the previous one stays valid.
type Draft struct {
	Code        string          `yaml:"code"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Questions   []QuestionDraft `yaml:"questions"`
}

func emptyQuestion() QuestionDraft {
	return QuestionDraft{Options: []string{"", ""}, CorrectAnswerIndex: 0, Points: 1}
}

// NewDraft starts a draft with a single blank question, mirroring the
// authoring form's initial state.
func NewDraft() Draft {
	return Draft{Questions: []QuestionDraft{emptyQuestion()}}
}

func cloneQuestions(qs []QuestionDraft) []QuestionDraft {
	next := make([]QuestionDraft, len(qs))
	copy(next, qs)
	for i := range next {
		opts := make([]string, len(next[i].Options))
		copy(opts, next[i].Options)
		next[i].Options = opts
	}
	return next
}

// AddQuestion appends a blank question.
func AddQuestion(d Draft) Draft {
	d.Questions = append(cloneQuestions(d.Questions), emptyQuestion())
	return d
}

// RemoveQuestion drops the question at i. The last remaining question
// and out-of-range indexes are left alone.
func RemoveQuestion(d Draft, i int) Draft {
	if len(d.Questions) <= 1 || i < 0 || i >= len(d.Questions) {
		return d
	}
	next := cloneQuestions(d.Questions)
	d.Questions = append(next[:i], next[i+1:]...)
	return d
}

// SetQuestionText replaces the text of question i.
func SetQuestionText(d Draft, i int, text string) Draft {
	if i < 0 || i >= len(d.Questions) {
		return d
	}
	next := cloneQuestions(d.Questions)
	next[i].Text = text
	d.Questions = next
	return d
}

// AddOption appends a blank option to question i.
func AddOption(d Draft, i int) Draft {
	if i < 0 || i >= len(d.Questions) {
		return d
	}
	next := cloneQuestions(d.Questions)
	next[i].Options = append(next[i].Options, "")
	d.Questions = next
	return d
}

// SetOption replaces option j of question i.
func SetOption(d Draft, i, j int, value string) Draft {
	if i < 0 || i >= len(d.Questions) {
		return d
	}
	if j < 0 || j >= len(d.Questions[i].Options) {
		return d
	}
	next := cloneQuestions(d.Questions)
	next[i].Options[j] = value
	d.Questions = next
	return d
}

// SetCorrectAnswer sets the zero-based correct index of question i.
func SetCorrectAnswer(d Draft, i, index int) Draft {
	if i < 0 || i >= len(d.Questions) {
		return d
	}
	next := cloneQuestions(d.Questions)
	next[i].CorrectAnswerIndex = index
	d.Questions = next
	return d
}

// SetPoints sets the points of question i.
func SetPoints(d Draft, i, points int) Draft {
	if i < 0 || i >= len(d.Questions) {
		return d
	}
	next := cloneQuestions(d.Questions)
	next[i].Points = points
	d.Questions = next
	return d
}

// BuildRequest normalizes a draft into the creation payload. The code is
// trimmed and uppercased, the title trimmed; both are required.
// Questions without non-empty text or at least two non-empty options are
// silently dropped, empty options removed, and points default to 1.
func BuildRequest(d Draft) (domain.CreateQuizRequest, error) {
	code := strings.ToUpper(strings.TrimSpace(d.Code))
	title := strings.TrimSpace(d.Title)
	if code == "" || title == "" {
		return domain.CreateQuizRequest{}, ErrMissingCodeOrTitle
	}

	var questions []domain.CreateQuestionRequest
	for _, q := range d.Questions {
		text := strings.TrimSpace(q.Text)
		var options []string
		for _, o := range q.Options {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				options = append(options, trimmed)
			}
		}
		if text == "" || len(options) < 2 {
			continue
		}
		points := q.Points
		if points <= 0 {
			points = 1
		}
		questions = append(questions, domain.CreateQuestionRequest{
			QuestionText:       text,
			Options:            options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			Points:             points,
		})
	}
	if len(questions) == 0 {
		return domain.CreateQuizRequest{}, ErrNoValidQuestions
	}

	return domain.CreateQuizRequest{
		Code:        code,
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		Questions:   questions,
	}, nil
}

// LoadDraftFile reads a draft from a YAML file, the CLI equivalent of
// filling in the authoring form.
func LoadDraftFile(path string) (Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Draft{}, err
	}
	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}
