// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/aidash/internal/hr"
	requestutil "github.com/taibuivan/aidash/internal/platform/request"
	"github.com/taibuivan/aidash/pkg/slice"
)

// # CV Scoring

// maxSkills caps how many job description keywords a CV is scored against.
const maxSkills = 10

/*
EvaluateCVs scores each CV against the job description.

Description: Each of the first [maxSkills] job description keywords gets a
skill score from its occurrence count in the CV (1 mention 50, 2 mentions 80,
3 or more 100). The CV score is the mean skill score. Results are ordered by
score, highest first.
*/
func EvaluateCVs(jobDescription string, cvs []requestutil.Upload) hr.CVEvaluation {
	skills := keywords(jobDescription)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}

	results := slice.Map(cvs, func(cv requestutil.Upload) hr.CVResult {
		return scoreCV(cv.Name, string(cv.Content), skills)
	})
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	kpis := hr.ExecutiveKPIs{TotalCandidates: len(results), Top5Count: min(5, len(results))}
	if len(results) > 0 {
		kpis.TopScore = results[0].Score
		kpis.AverageMatch = round1(slice.Sum(results, func(r hr.CVResult) float64 { return r.Score }) / float64(len(results)))
	}

	return hr.CVEvaluation{Results: results, ExecutiveKPIs: kpis}
}

func scoreCV(name, content string, skills []string) hr.CVResult {
	tally := counts(content)
	result := hr.CVResult{
		Name:        name,
		SkillScores: make(map[string]float64, len(skills)),
		SkillStatus: hr.SkillStatus{Missing: []string{}, Absent: []string{}, Strong: []string{}},
	}

	for _, skill := range skills {
		var score float64
		switch mentions := tally[skill]; {
		case mentions >= 3:
			score = 100
		case mentions == 2:
			score = 80
		case mentions == 1:
			score = 50
		}
		result.SkillScores[skill] = score

		switch {
		case score >= 80:
			result.SkillStatus.Strong = append(result.SkillStatus.Strong, skill)
		case score > 0:
			// Mentioned once: claimed but not demonstrated.
			result.SkillStatus.Missing = append(result.SkillStatus.Missing, skill)
		default:
			result.SkillStatus.Absent = append(result.SkillStatus.Absent, skill)
		}
	}

	if len(skills) > 0 {
		result.Score = round1(slice.Sum(skills, func(s string) float64 { return result.SkillScores[s] }) / float64(len(skills)))
	}
	result.HireRecommendation = recommend(result.Score)
	result.Evaluation = describeCV(result)
	return result
}

func recommend(score float64) hr.HireRecommendation {
	switch {
	case score >= 80:
		return hr.HireRecommendation{Recommendation: "Strong Hire", Emoji: "🟢", Color: "green", Confidence: round1(score / 100), RiskLevel: "Low"}
	case score >= 60:
		return hr.HireRecommendation{Recommendation: "Consider", Emoji: "🟡", Color: "orange", Confidence: round1(score / 100), RiskLevel: "Medium"}
	default:
		return hr.HireRecommendation{Recommendation: "Not Recommended", Emoji: "🔴", Color: "red", Confidence: round1(1 - score/100), RiskLevel: "High"}
	}
}

func describeCV(result hr.CVResult) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "### %s\n", result.Name)
	fmt.Fprintf(&builder, "Overall match: **%.1f%%** (%s)\n", result.Score, result.HireRecommendation.Recommendation)
	if len(result.SkillStatus.Strong) > 0 {
		fmt.Fprintf(&builder, "**Strengths:** %s\n", strings.Join(result.SkillStatus.Strong, ", "))
	}
	if len(result.SkillStatus.Absent) > 0 {
		fmt.Fprintf(&builder, "**Gaps:** %s\n", strings.Join(result.SkillStatus.Absent, ", "))
	}
	return strings.TrimRight(builder.String(), "\n")
}

// # Policy Library

type policyDocument struct {
	id        int
	name      string
	sentences []string
}

// PolicyLibrary holds uploaded policy documents for question answering.
type PolicyLibrary struct {
	mu        sync.RWMutex
	documents []policyDocument
	nextID    int
}

// NewPolicyLibrary creates an empty library.
func NewPolicyLibrary() *PolicyLibrary {
	return &PolicyLibrary{nextID: 1}
}

// Add indexes the uploads and returns their document IDs.
func (library *PolicyLibrary) Add(uploads []requestutil.Upload) hr.PolicyUpload {
	library.mu.Lock()
	defer library.mu.Unlock()

	ids := make([]int, 0, len(uploads))
	for _, upload := range uploads {
		library.documents = append(library.documents, policyDocument{
			id:        library.nextID,
			name:      upload.Name,
			sentences: sentences(string(upload.Content)),
		})
		ids = append(ids, library.nextID)
		library.nextID++
	}

	return hr.PolicyUpload{
		Message:       fmt.Sprintf("%d policy document(s) uploaded successfully", len(ids)),
		DocumentCount: len(ids),
		DocumentIDs:   ids,
	}
}

// Len is the number of indexed documents.
func (library *PolicyLibrary) Len() int {
	library.mu.RLock()
	defer library.mu.RUnlock()
	return len(library.documents)
}

// answerLimit is how many matching sentences an answer quotes.
const answerLimit = 2

// NoPolicyAnswer is returned when no sentence shares a keyword with the question.
const NoPolicyAnswer = "I could not find information about that in the uploaded policies."

/*
Ask answers a question with the best-matching policy sentences.

Description: Sentences are ranked by how many question keywords they contain;
ties keep upload order. Up to [answerLimit] sentences are quoted, each with the
document it came from.
*/
func (library *PolicyLibrary) Ask(question string) hr.PolicyAnswer {
	library.mu.RLock()
	defer library.mu.RUnlock()

	type match struct {
		source string
		text   string
		hits   int
	}

	keys := keywords(question)
	var matches []match
	for _, document := range library.documents {
		for _, sentence := range document.sentences {
			if hits := overlap(keys, counts(sentence)); hits > 0 {
				matches = append(matches, match{source: document.name, text: sentence, hits: hits})
			}
		}
	}
	if len(matches) == 0 {
		return hr.PolicyAnswer{Answer: NoPolicyAnswer}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].hits > matches[j].hits })
	if len(matches) > answerLimit {
		matches = matches[:answerLimit]
	}

	var builder strings.Builder
	builder.WriteString("### Answer\n")
	for _, m := range matches {
		fmt.Fprintf(&builder, "%s. (**Source:** %s)\n", m.text, m.source)
	}
	return hr.PolicyAnswer{Answer: strings.TrimRight(builder.String(), "\n")}
}

// # Technical Interview

// QuestionCount is the number of interview questions generated per CV.
const QuestionCount = 5

var genericQuestions = []string{
	"Walk through the design of the system you are most proud of.",
	"How do you decide that a piece of code is ready for production?",
	"Describe a production incident you debugged and what you changed afterwards.",
	"How do you keep a large codebase maintainable as the team grows?",
	"Explain a technical trade-off you made that you would make differently today.",
}

/*
GenerateQuestions builds [QuestionCount] interview questions.

Description: Job description keywords come first. A skill the CV mentions gets
a depth question, one it does not gets a ramp-up question. Generic questions
fill the remainder.
*/
func GenerateQuestions(jobDescription string, cv requestutil.Upload) hr.TechnicalQuestions {
	tally := counts(string(cv.Content))
	questions := make([]string, 0, QuestionCount)

	for _, skill := range keywords(jobDescription) {
		if len(questions) == QuestionCount {
			break
		}
		if tally[skill] > 0 {
			questions = append(questions, fmt.Sprintf("Describe a project where you used %s. What trade-offs did you make?", skill))
			continue
		}
		questions = append(questions, fmt.Sprintf("The role requires %s. How would you become productive with it quickly?", skill))
	}
	for i := 0; len(questions) < QuestionCount; i++ {
		questions = append(questions, genericQuestions[i%len(genericQuestions)])
	}

	return hr.TechnicalQuestions{Questions: questions}
}

/*
EvaluateAnswers scores each answer out of [hr.QuestionMaxScore].

Description: An answer earns 1 point per 5 words (up to 12) and 4 points per
question keyword it repeats, capped at the maximum. A blank answer scores 0.
*/
func EvaluateAnswers(input hr.TechnicalAnswers) hr.TechnicalEvaluation {
	evaluation := hr.TechnicalEvaluation{
		Evaluations: make([]hr.QuestionEvaluation, 0, len(input.Questions)),
		MaxScore:    float64(len(input.Questions) * hr.QuestionMaxScore),
	}

	for i, question := range input.Questions {
		answer := input.Answers[i]
		score := min(float64(len(words(answer))/5), 12)
		score += float64(4 * overlap(keywords(question), counts(answer)))
		score = min(score, hr.QuestionMaxScore)

		evaluation.Evaluations = append(evaluation.Evaluations, hr.QuestionEvaluation{
			QuestionNumber: i + 1,
			Question:       question,
			Answer:         answer,
			Score:          score,
			Feedback:       answerFeedback(score),
		})
		evaluation.TotalScore += score
	}

	evaluation.OverallFeedback = overallFeedback(evaluation)
	return evaluation
}

func answerFeedback(score float64) string {
	switch hr.QuestionBand(score) {
	case hr.BandGood:
		return "Thorough answer that addresses the question directly."
	case hr.BandFair:
		return "Reasonable answer; more concrete detail would strengthen it."
	default:
		return "The answer does not engage with the question in enough depth."
	}
}

func overallFeedback(evaluation hr.TechnicalEvaluation) string {
	percent := evaluation.Percent()
	switch {
	case percent >= 80:
		return fmt.Sprintf("### Summary\n**%.0f%%** overall. The candidate shows strong command of the required skills.", percent)
	case percent >= 50:
		return fmt.Sprintf("### Summary\n**%.0f%%** overall. Solid foundations with gaps worth probing in a follow-up.", percent)
	default:
		return fmt.Sprintf("### Summary\n**%.0f%%** overall. The answers lacked the depth expected for this role.", percent)
	}
}
