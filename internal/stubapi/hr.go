// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/aidash/internal/hr"
	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/constants"
	"github.com/taibuivan/aidash/internal/platform/ctxutil"
	"github.com/taibuivan/aidash/internal/platform/middleware"
	requestutil "github.com/taibuivan/aidash/internal/platform/request"
	"github.com/taibuivan/aidash/internal/platform/respond"
	"github.com/taibuivan/aidash/internal/platform/sec"
	"github.com/taibuivan/aidash/internal/platform/validate"
)

// HRHandler implements the HR AI Platform endpoints.
type HRHandler struct {
	policies *PolicyLibrary
	logger   *slog.Logger
}

// NewHRHandler constructs a new [HRHandler].
func NewHRHandler(policies *PolicyLibrary, logger *slog.Logger) *HRHandler {
	return &HRHandler{policies: policies, logger: logger}
}

// Routes returns a [chi.Router] configured with HR routes.
//
// # Endpoints
//   - POST /cv/evaluate                   : any authenticated user
//   - POST /policy/upload                 : HR Manager
//   - POST /policy/ask                    : HR Manager
//   - POST /technical/generate-questions  : HR Manager
//   - POST /technical/evaluate-answers    : HR Manager
func (handler *HRHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/cv/evaluate", handler.evaluateCVs)

	router.Group(func(restricted chi.Router) {
		restricted.Use(middleware.RequireRole(sec.RoleHRManager))

		restricted.Post("/policy/upload", handler.uploadPolicies)
		restricted.Post("/policy/ask", handler.askPolicy)
		restricted.Post("/technical/generate-questions", handler.generateQuestions)
		restricted.Post("/technical/evaluate-answers", handler.evaluateAnswers)
	})

	return router
}

// evaluateCVs handles POST /api/hr/cv/evaluate.
func (handler *HRHandler) evaluateCVs(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Payload Extraction ─────────────────────────────────────────────
	if err := requestutil.ParseMultipart(writer, request, constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}
	cvs, err := requestutil.Files(request, "cv_files")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	jobDescription := request.FormValue("job_description")

	// ── 2. Boundary Validation ────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		RequiredMsg("job_description", jobDescription, hr.MsgJobDescriptionRequired).
		Custom("cv_files", len(cvs) == 0, hr.MsgCVFilesRequired)
	if err := validator.FirstErr(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────
	evaluation := EvaluateCVs(jobDescription, cvs)
	ctxutil.LoggerOr(request.Context(), handler.logger).InfoContext(request.Context(), "cv_batch_evaluated",
		slog.Int("candidates", evaluation.ExecutiveKPIs.TotalCandidates),
		slog.Float64("top_score", evaluation.ExecutiveKPIs.TopScore),
	)

	// ── 4. Presentation Output ────────────────────────────────────────────
	respond.OK(writer, "CVs evaluated successfully", evaluation)
}

// uploadPolicies handles POST /api/hr/policy/upload.
func (handler *HRHandler) uploadPolicies(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}
	policies, err := requestutil.Files(request, "policy_files")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(policies) == 0 {
		respond.Error(writer, request, apperr.ValidationError(hr.MsgPolicyFilesRequired))
		return
	}

	upload := handler.policies.Add(policies)
	respond.OK(writer, upload.Message, upload)
}

// askPolicy handles POST /api/hr/policy/ask.
func (handler *HRHandler) askPolicy(writer http.ResponseWriter, request *http.Request) {
	var input hr.PolicyQuestion
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.RequiredMsg("question", input.Question, hr.MsgQuestionRequired)
	if err := validator.FirstErr(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if handler.policies.Len() == 0 {
		respond.Fail(writer, "No policy documents have been uploaded yet")
		return
	}

	respond.OK(writer, "Answer generated", handler.policies.Ask(input.Question))
}

// generateQuestions handles POST /api/hr/technical/generate-questions.
func (handler *HRHandler) generateQuestions(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}
	cvs, err := requestutil.Files(request, "cv_file")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	jobDescription := request.FormValue("job_description")

	validator := &validate.Validator{}
	validator.
		RequiredMsg("job_description", jobDescription, hr.MsgJobDescriptionRequired).
		Custom("cv_file", len(cvs) == 0, hr.MsgCVFileRequired)
	if err := validator.FirstErr(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Questions generated", GenerateQuestions(jobDescription, cvs[0]))
}

// evaluateAnswers handles POST /api/hr/technical/evaluate-answers.
func (handler *HRHandler) evaluateAnswers(writer http.ResponseWriter, request *http.Request) {
	var input hr.TechnicalAnswers
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Custom("questions", len(input.Questions) == 0, hr.MsgNoQuestions).
		Custom("answers", len(input.Answers) != len(input.Questions), "Answers must match questions")
	if err := validator.FirstErr(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Answers evaluated", EvaluateAnswers(input))
}
