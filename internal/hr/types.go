// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package hr holds the HR AI Platform panels: CV evaluation, policy Q&A and
// technical evaluation.
//
// # Architecture
//
// [Client] maps each remote endpoint to a typed call through the gateway.
// The panels ([CVPanel], [PolicyPanel], [TechnicalPanel]) own their slice of
// UI state and validate input before dispatching.
package hr

// # Endpoints

const (
	PathCVEvaluate        = "/api/hr/cv/evaluate"
	PathPolicyUpload      = "/api/hr/policy/upload"
	PathPolicyAsk         = "/api/hr/policy/ask"
	PathTechnicalGenerate = "/api/hr/technical/generate-questions"
	PathTechnicalEvaluate = "/api/hr/technical/evaluate-answers"
)

// # CV Evaluation

// SkillStatus buckets the job description's skills for one candidate.
type SkillStatus struct {
	Missing []string `json:"missing"`
	Absent  []string `json:"absent"`
	Strong  []string `json:"strong"`
}

// HireRecommendation is the model's verdict on a candidate.
type HireRecommendation struct {
	Recommendation string  `json:"recommendation"`
	Emoji          string  `json:"emoji"`
	Color          string  `json:"color"`
	Confidence     float64 `json:"confidence"`
	RiskLevel      string  `json:"risk_level"`
}

// CVResult is the evaluation of one uploaded CV.
type CVResult struct {
	Name               string             `json:"name"`
	Score              float64            `json:"score"`
	Evaluation         string             `json:"evaluation"`
	SkillScores        map[string]float64 `json:"skill_scores"`
	SkillStatus        SkillStatus        `json:"skill_status"`
	HireRecommendation HireRecommendation `json:"hire_recommendation"`
}

// ExecutiveKPIs summarises a batch.
type ExecutiveKPIs struct {
	TotalCandidates int     `json:"total_candidates"`
	AverageMatch    float64 `json:"average_match"`
	TopScore        float64 `json:"top_score"`
	Top5Count       int     `json:"top_5_count"`
}

// CVEvaluation is the data of POST /api/hr/cv/evaluate.
type CVEvaluation struct {
	Results       []CVResult    `json:"results"`
	ExecutiveKPIs ExecutiveKPIs `json:"executive_kpis"`
}

// # Policy

// PolicyUpload is the data of POST /api/hr/policy/upload.
type PolicyUpload struct {
	Message       string `json:"message"`
	DocumentCount int    `json:"document_count"`
	DocumentIDs   []int  `json:"document_ids"`
}

// PolicyQuestion is the body of POST /api/hr/policy/ask.
type PolicyQuestion struct {
	Question string `json:"question"`
}

// PolicyAnswer is the data of POST /api/hr/policy/ask.
type PolicyAnswer struct {
	Answer string `json:"answer"`
}

// # Technical Evaluation

// TechnicalQuestions is the data of POST /api/hr/technical/generate-questions.
type TechnicalQuestions struct {
	Questions []string `json:"questions"`
}

// TechnicalAnswers is the body of POST /api/hr/technical/evaluate-answers.
type TechnicalAnswers struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
}

// QuestionEvaluation scores a single answer out of [QuestionMaxScore].
type QuestionEvaluation struct {
	QuestionNumber int     `json:"question_number"`
	Question       string  `json:"question"`
	Answer         string  `json:"answer"`
	Score          float64 `json:"score"`
	Feedback       string  `json:"feedback"`
}

// TechnicalEvaluation is the data of POST /api/hr/technical/evaluate-answers.
type TechnicalEvaluation struct {
	Evaluations     []QuestionEvaluation `json:"evaluations"`
	TotalScore      float64              `json:"total_score"`
	MaxScore        float64              `json:"max_score"`
	OverallFeedback string               `json:"overall_feedback"`
}

// Percent is TotalScore over MaxScore, 0 when MaxScore is 0.
func (evaluation TechnicalEvaluation) Percent() float64 {
	if evaluation.MaxScore == 0 {
		return 0
	}
	return evaluation.TotalScore / evaluation.MaxScore * 100
}
