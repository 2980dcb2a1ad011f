// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hr

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/aidash/internal/gateway"
	"github.com/taibuivan/aidash/internal/panel"
	"github.com/taibuivan/aidash/internal/platform/apperr"
)

// # Display messages

const (
	FallbackCVEvaluate        = "Evaluation failed"
	FallbackPolicyUpload      = "Upload failed"
	FallbackPolicyAsk         = "Failed to get answer"
	FallbackTechnicalGenerate = "Failed to generate questions"
	FallbackTechnicalEvaluate = "Evaluation failed"

	MsgJobDescriptionRequired = "Job description is required"
	MsgCVFilesRequired        = "At least one CV file is required"
	MsgPolicyFilesRequired    = "At least one policy file is required"
	MsgQuestionRequired       = "Please enter a question"
	MsgCVFileRequired         = "CV file is required"
	MsgNoQuestions            = "No questions available"
	MsgAnswersRequired        = "Please provide answers for all questions"
)

// # CV Evaluation

// CVPanel evaluates a batch of CVs.
type CVPanel struct {
	client *Client
	*panel.Panel[CVEvaluation]
}

// NewCVPanel creates an idle CV evaluation panel.
func NewCVPanel(client *Client, logger *slog.Logger) *CVPanel {
	return &CVPanel{client: client, Panel: panel.New[CVEvaluation]("cv_evaluation", logger)}
}

// Evaluate requires a job description and at least one CV.
func (cv *CVPanel) Evaluate(ctx context.Context, jobDescription string, files []gateway.File) error {
	return cv.Submit(ctx, panel.Action[CVEvaluation, CVEvaluation]{
		Validate: func(CVEvaluation) error {
			switch {
			case strings.TrimSpace(jobDescription) == "":
				return apperr.ValidationError(MsgJobDescriptionRequired)
			case len(files) == 0:
				return apperr.ValidationError(MsgCVFilesRequired)
			}
			return nil
		},
		Call: func(ctx context.Context, _ CVEvaluation) (CVEvaluation, error) {
			return cv.client.EvaluateCVs(ctx, jobDescription, files)
		},
		Fallback: FallbackCVEvaluate,
	})
}

// # Policy Q&A

// PolicyState is the policy panel's data.
type PolicyState struct {
	LastUpload *PolicyUpload
	Question   string
	Answer     string
}

// PolicyPanel uploads policy documents and answers questions over them.
type PolicyPanel struct {
	client *Client
	*panel.Panel[PolicyState]
}

// NewPolicyPanel creates an idle policy panel.
func NewPolicyPanel(client *Client, logger *slog.Logger) *PolicyPanel {
	return &PolicyPanel{client: client, Panel: panel.New[PolicyState]("policy", logger)}
}

// Upload requires at least one file.
func (policy *PolicyPanel) Upload(ctx context.Context, files []gateway.File) error {
	return panel.Apply(ctx, policy.Panel, panel.Action[PolicyState, PolicyUpload]{
		Validate: func(PolicyState) error {
			if len(files) == 0 {
				return apperr.ValidationError(MsgPolicyFilesRequired)
			}
			return nil
		},
		Call: func(ctx context.Context, _ PolicyState) (PolicyUpload, error) {
			return policy.client.UploadPolicies(ctx, files)
		},
		Commit: func(current PolicyState, result PolicyUpload) PolicyState {
			current.LastUpload = &result
			return current
		},
		Fallback: FallbackPolicyUpload,
	})
}

// Ask records the question as it leaves and the answer when it lands.
func (policy *PolicyPanel) Ask(ctx context.Context, question string) error {
	return panel.Apply(ctx, policy.Panel, panel.Action[PolicyState, PolicyAnswer]{
		Validate: func(PolicyState) error {
			if strings.TrimSpace(question) == "" {
				return apperr.ValidationError(MsgQuestionRequired)
			}
			return nil
		},
		Before: func(current PolicyState) PolicyState {
			current.Question = question
			return current
		},
		Call: func(ctx context.Context, _ PolicyState) (PolicyAnswer, error) {
			return policy.client.AskPolicy(ctx, question)
		},
		Commit: func(current PolicyState, result PolicyAnswer) PolicyState {
			current.Answer = result.Answer
			return current
		},
		Fallback: FallbackPolicyAsk,
	})
}

// # Technical Evaluation

// TechnicalState is the two-step interview flow.
type TechnicalState struct {
	Questions  []string
	Answers    []string
	Evaluation *TechnicalEvaluation
}

// Step is 0 before questions exist, 1 once they do.
func (state TechnicalState) Step() int {
	if len(state.Questions) == 0 {
		return 0
	}
	return 1
}

// TechnicalPanel generates questions from a CV and scores the answers.
type TechnicalPanel struct {
	client *Client
	*panel.Panel[TechnicalState]
}

// NewTechnicalPanel creates an idle technical evaluation panel.
func NewTechnicalPanel(client *Client, logger *slog.Logger) *TechnicalPanel {
	return &TechnicalPanel{client: client, Panel: panel.New[TechnicalState]("technical", logger)}
}

// Generate replaces the questions, blanks the answers and drops any previous evaluation.
func (technical *TechnicalPanel) Generate(ctx context.Context, jobDescription string, cv *gateway.File) error {
	return panel.Apply(ctx, technical.Panel, panel.Action[TechnicalState, TechnicalQuestions]{
		Validate: func(TechnicalState) error {
			switch {
			case strings.TrimSpace(jobDescription) == "":
				return apperr.ValidationError(MsgJobDescriptionRequired)
			case cv == nil:
				return apperr.ValidationError(MsgCVFileRequired)
			}
			return nil
		},
		Call: func(ctx context.Context, _ TechnicalState) (TechnicalQuestions, error) {
			return technical.client.GenerateQuestions(ctx, jobDescription, *cv)
		},
		Commit: func(_ TechnicalState, result TechnicalQuestions) TechnicalState {
			return TechnicalState{
				Questions: result.Questions,
				Answers:   make([]string, len(result.Questions)),
			}
		},
		Fallback: FallbackTechnicalGenerate,
	})
}

// SetAnswer edits one answer locally. Out-of-range indexes are ignored.
func (technical *TechnicalPanel) SetAnswer(index int, answer string) error {
	return technical.Update(func(current TechnicalState) TechnicalState {
		if index < 0 || index >= len(current.Answers) {
			return current
		}
		answers := append([]string(nil), current.Answers...)
		answers[index] = answer
		current.Answers = answers
		return current
	})
}

// Evaluate requires questions and a non-blank answer for each.
func (technical *TechnicalPanel) Evaluate(ctx context.Context) error {
	return panel.Apply(ctx, technical.Panel, panel.Action[TechnicalState, TechnicalEvaluation]{
		Validate: func(current TechnicalState) error {
			if len(current.Questions) == 0 {
				return apperr.ValidationError(MsgNoQuestions)
			}
			if len(current.Answers) != len(current.Questions) {
				return apperr.ValidationError(MsgAnswersRequired)
			}
			for _, answer := range current.Answers {
				if strings.TrimSpace(answer) == "" {
					return apperr.ValidationError(MsgAnswersRequired)
				}
			}
			return nil
		},
		Call: func(ctx context.Context, current TechnicalState) (TechnicalEvaluation, error) {
			return technical.client.EvaluateAnswers(ctx, TechnicalAnswers{
				Questions: current.Questions,
				Answers:   current.Answers,
			})
		},
		Commit: func(current TechnicalState, result TechnicalEvaluation) TechnicalState {
			current.Evaluation = &result
			return current
		},
		Fallback: FallbackTechnicalEvaluate,
	})
}
