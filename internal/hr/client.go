// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hr

import (
	"context"
	"net/http"

	"github.com/taibuivan/aidash/internal/gateway"
)

// Client issues HR API calls through the gateway.
type Client struct {
	gateway *gateway.Gateway
}

// NewClient wraps the gateway.
func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gateway: gw}
}

// EvaluateCVs uploads CVs against a job description.
func (client *Client) EvaluateCVs(ctx context.Context, jobDescription string, cvs []gateway.File) (CVEvaluation, error) {
	return gateway.Call[CVEvaluation](ctx, client.gateway, gateway.Request{
		Method: http.MethodPost,
		Path:   PathCVEvaluate,
		Fields: map[string]string{"job_description": jobDescription},
		Files:  map[string][]gateway.File{"cv_files": cvs},
	}, FallbackCVEvaluate)
}

// UploadPolicies indexes policy documents.
func (client *Client) UploadPolicies(ctx context.Context, policies []gateway.File) (PolicyUpload, error) {
	return gateway.Call[PolicyUpload](ctx, client.gateway, gateway.Request{
		Method: http.MethodPost,
		Path:   PathPolicyUpload,
		Files:  map[string][]gateway.File{"policy_files": policies},
	}, FallbackPolicyUpload)
}

// AskPolicy asks a question over the indexed policies.
func (client *Client) AskPolicy(ctx context.Context, question string) (PolicyAnswer, error) {
	return gateway.Call[PolicyAnswer](ctx, client.gateway, gateway.Request{
		Method: http.MethodPost,
		Path:   PathPolicyAsk,
		JSON:   PolicyQuestion{Question: question},
	}, FallbackPolicyAsk)
}

// GenerateQuestions derives interview questions from a job description and one CV.
func (client *Client) GenerateQuestions(ctx context.Context, jobDescription string, cv gateway.File) (TechnicalQuestions, error) {
	return gateway.Call[TechnicalQuestions](ctx, client.gateway, gateway.Request{
		Method: http.MethodPost,
		Path:   PathTechnicalGenerate,
		Fields: map[string]string{"job_description": jobDescription},
		Files:  map[string][]gateway.File{"cv_file": {cv}},
	}, FallbackTechnicalGenerate)
}

// EvaluateAnswers scores the candidate's answers.
func (client *Client) EvaluateAnswers(ctx context.Context, answers TechnicalAnswers) (TechnicalEvaluation, error) {
	return gateway.Call[TechnicalEvaluation](ctx, client.gateway, gateway.Request{
		Method: http.MethodPost,
		Path:   PathTechnicalEvaluate,
		JSON:   answers,
	}, FallbackTechnicalEvaluate)
}
