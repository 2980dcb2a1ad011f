// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package hr_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/gateway"
	"github.com/taibuivan/aidash/internal/hr"
	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/session"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func envelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": success, "message": message}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

func newClient(t *testing.T, handler http.HandlerFunc) *hr.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewMemoryArea(), quietLogger())
	gw := gateway.New(&config.Client{APIBaseURL: server.URL, APITimeout: 5 * time.Second}, store, quietLogger())
	return hr.NewClient(gw)
}

func file(name, content string) gateway.File {
	return gateway.File{Name: name, Content: strings.NewReader(content)}
}

/*
TestCVPanel_Validation never reaches the network.
*/
func TestCVPanel_Validation(t *testing.T) {
	var calls atomic.Int32
	cv := hr.NewCVPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) { calls.Add(1) }), quietLogger())
	ctx := context.Background()

	err := cv.Evaluate(ctx, "   ", []gateway.File{file("a.pdf", "a")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, hr.MsgJobDescriptionRequired, cv.Snapshot().Error)

	_ = cv.Evaluate(ctx, "Go engineer", nil)
	assert.Equal(t, hr.MsgCVFilesRequired, cv.Snapshot().Error)
	assert.Zero(t, calls.Load())
}

/*
TestCVPanel_Evaluate stores the batch and clears the previous error.
*/
func TestCVPanel_Evaluate(t *testing.T) {
	cv := hr.NewCVPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, hr.PathCVEvaluate, r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		envelope(w, 200, true, "ok", hr.CVEvaluation{
			Results:       []hr.CVResult{{Name: "a.pdf", Score: 82}},
			ExecutiveKPIs: hr.ExecutiveKPIs{TotalCandidates: len(r.MultipartForm.File["cv_files"])},
		})
	}), quietLogger())
	cv.SetError("stale")

	require.NoError(t, cv.Evaluate(context.Background(), "Go engineer", []gateway.File{file("a.pdf", "a"), file("b.pdf", "b")}))

	state := cv.Snapshot()
	assert.Empty(t, state.Error)
	assert.Equal(t, 2, state.Data.ExecutiveKPIs.TotalCandidates)
	assert.Equal(t, hr.BandGood, hr.ScoreBand(state.Data.Results[0].Score))
}

/*
TestPolicyPanel_AskFailureKeepsAnswer shows the server message verbatim.
*/
func TestPolicyPanel_AskFailureKeepsAnswer(t *testing.T) {
	var fail atomic.Bool
	policy := hr.NewPolicyPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			envelope(w, 200, false, "No policies have been uploaded", nil)
			return
		}
		var question hr.PolicyQuestion
		_ = json.NewDecoder(r.Body).Decode(&question)
		envelope(w, 200, true, "ok", hr.PolicyAnswer{Answer: "20 days for " + question.Question})
	}), quietLogger())
	ctx := context.Background()

	assert.Error(t, policy.Ask(ctx, ""))
	assert.Equal(t, hr.MsgQuestionRequired, policy.Snapshot().Error)

	require.NoError(t, policy.Ask(ctx, "leave"))
	assert.Equal(t, "20 days for leave", policy.Snapshot().Data.Answer)

	fail.Store(true)
	require.Error(t, policy.Ask(ctx, "remote work"))

	state := policy.Snapshot()
	assert.Equal(t, "No policies have been uploaded", state.Error)
	assert.Equal(t, "remote work", state.Data.Question)
	assert.Equal(t, "20 days for leave", state.Data.Answer)
}

/*
TestPolicyPanel_Upload sends every file under policy_files.
*/
func TestPolicyPanel_Upload(t *testing.T) {
	policy := hr.NewPolicyPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		count := len(r.MultipartForm.File["policy_files"])
		envelope(w, 200, true, "ok", hr.PolicyUpload{Message: "indexed", DocumentCount: count, DocumentIDs: []int{1, 2}})
	}), quietLogger())

	assert.Error(t, policy.Upload(context.Background(), nil))
	assert.Equal(t, hr.MsgPolicyFilesRequired, policy.Snapshot().Error)

	require.NoError(t, policy.Upload(context.Background(), []gateway.File{file("leave.pdf", "x"), file("it.pdf", "y")}))
	require.NotNil(t, policy.Snapshot().Data.LastUpload)
	assert.Equal(t, 2, policy.Snapshot().Data.LastUpload.DocumentCount)
}

/*
TestTechnicalPanel_Flow walks generate, answer and evaluate.
*/
func TestTechnicalPanel_Flow(t *testing.T) {
	technical := hr.NewTechnicalPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case hr.PathTechnicalGenerate:
			envelope(w, 200, true, "ok", hr.TechnicalQuestions{Questions: []string{"Q1", "Q2"}})
		case hr.PathTechnicalEvaluate:
			var body hr.TechnicalAnswers
			_ = json.NewDecoder(r.Body).Decode(&body)
			envelope(w, 200, true, "ok", hr.TechnicalEvaluation{TotalScore: 30, MaxScore: 40, OverallFeedback: strings.Join(body.Answers, ",")})
		}
	}), quietLogger())
	ctx := context.Background()

	assert.Error(t, technical.Evaluate(ctx))
	assert.Equal(t, hr.MsgNoQuestions, technical.Snapshot().Error)

	assert.Error(t, technical.Generate(ctx, "Go engineer", nil))
	assert.Equal(t, hr.MsgCVFileRequired, technical.Snapshot().Error)

	cv := file("cv.pdf", "x")
	require.NoError(t, technical.Generate(ctx, "Go engineer", &cv))
	assert.Equal(t, 1, technical.Snapshot().Data.Step())
	assert.Equal(t, []string{"", ""}, technical.Snapshot().Data.Answers)

	require.NoError(t, technical.SetAnswer(0, "goroutines"))
	assert.Error(t, technical.Evaluate(ctx))
	assert.Equal(t, hr.MsgAnswersRequired, technical.Snapshot().Error)

	require.NoError(t, technical.SetAnswer(1, "channels"))
	require.NoError(t, technical.Evaluate(ctx))

	evaluation := technical.Snapshot().Data.Evaluation
	require.NotNil(t, evaluation)
	assert.Equal(t, "goroutines,channels", evaluation.OverallFeedback)
	assert.InDelta(t, 75.0, evaluation.Percent(), 0.001)

	// Regenerating starts over.
	cv = file("cv.pdf", "x")
	require.NoError(t, technical.Generate(ctx, "Go engineer", &cv))
	assert.Nil(t, technical.Snapshot().Data.Evaluation)
	assert.Equal(t, []string{"", ""}, technical.Snapshot().Data.Answers)
}

/*
TestBands follow the dashboard's colour thresholds.
*/
func TestBands(t *testing.T) {
	assert.Equal(t, hr.BandGood, hr.ScoreBand(80))
	assert.Equal(t, hr.BandFair, hr.ScoreBand(79.9))
	assert.Equal(t, hr.BandPoor, hr.ScoreBand(59))

	assert.Equal(t, hr.BandGood, hr.RecommendationBand("✅ Strong Hire"))
	assert.Equal(t, hr.BandFair, hr.RecommendationBand("Consider"))
	assert.Equal(t, hr.BandPoor, hr.RecommendationBand("Reject"))

	assert.Equal(t, hr.BandGood, hr.QuestionBand(16))
	assert.Equal(t, hr.BandFair, hr.QuestionBand(10))
	assert.Equal(t, "poor", hr.QuestionBand(9.5).String())
}
