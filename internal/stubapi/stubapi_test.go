// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/autosphere"
	"github.com/taibuivan/aidash/internal/hr"
	requestutil "github.com/taibuivan/aidash/internal/platform/request"
	"github.com/taibuivan/aidash/internal/stubapi"
	"github.com/taibuivan/aidash/pkg/pointer"
)

func upload(name, content string) requestutil.Upload {
	return requestutil.Upload{Name: name, Size: int64(len(content)), Content: []byte(content)}
}

/*
TestEvaluateCVs_RanksByOverlap orders candidates and fills the KPIs.
*/
func TestEvaluateCVs_RanksByOverlap(t *testing.T) {
	jd := "Golang developer with Kubernetes and PostgreSQL"
	evaluation := stubapi.EvaluateCVs(jd, []requestutil.Upload{
		upload("weak.txt", "I like painting."),
		upload("strong.txt", "golang golang golang kubernetes kubernetes postgresql postgresql postgresql developer developer developer"),
	})

	require.Len(t, evaluation.Results, 2)
	best := evaluation.Results[0]
	assert.Equal(t, "strong.txt", best.Name)
	assert.Equal(t, "Strong Hire", best.HireRecommendation.Recommendation)
	assert.Equal(t, hr.BandGood, hr.ScoreBand(best.Score))
	assert.Contains(t, best.SkillStatus.Strong, "kubernetes")
	assert.True(t, strings.HasPrefix(best.Evaluation, "### strong.txt"))

	weak := evaluation.Results[1]
	assert.Zero(t, weak.Score)
	assert.ElementsMatch(t, []string{"golang", "developer", "kubernetes", "postgresql"}, weak.SkillStatus.Absent)

	assert.Equal(t, 2, evaluation.ExecutiveKPIs.TotalCandidates)
	assert.Equal(t, 2, evaluation.ExecutiveKPIs.Top5Count)
	assert.Equal(t, best.Score, evaluation.ExecutiveKPIs.TopScore)
}

/*
TestPolicyLibrary_Ask quotes the best sentence with its source.
*/
func TestPolicyLibrary_Ask(t *testing.T) {
	library := stubapi.NewPolicyLibrary()
	uploaded := library.Add([]requestutil.Upload{
		upload("leave.txt", "Employees receive 20 days of annual leave. Leave requests need manager approval."),
		upload("travel.txt", "Travel must be booked through the portal."),
	})
	assert.Equal(t, []int{1, 2}, uploaded.DocumentIDs)
	assert.Equal(t, 2, library.Len())

	answer := library.Ask("How many days of annual leave do I get?")
	assert.Contains(t, answer.Answer, "Employees receive 20 days of annual leave")
	assert.Contains(t, answer.Answer, "**Source:** leave.txt")

	assert.Equal(t, stubapi.NoPolicyAnswer, library.Ask("parking rules?").Answer)
}

/*
TestGenerateQuestions_PadsToCount mixes skill and generic questions.
*/
func TestGenerateQuestions_PadsToCount(t *testing.T) {
	questions := stubapi.GenerateQuestions("Rust and Kafka", upload("cv.txt", "Five years of rust"))

	require.Len(t, questions.Questions, stubapi.QuestionCount)
	assert.Contains(t, questions.Questions[0], "Describe a project where you used rust")
	assert.Contains(t, questions.Questions[1], "The role requires kafka")
}

/*
TestEvaluateAnswers_Bounds caps scores and zeroes blank answers.
*/
func TestEvaluateAnswers_Bounds(t *testing.T) {
	long := strings.Repeat("kafka partitions consumer groups offsets ", 20)
	evaluation := stubapi.EvaluateAnswers(hr.TechnicalAnswers{
		Questions: []string{"Explain kafka partitions and consumer groups", "Describe caching"},
		Answers:   []string{long, "  "},
	})

	require.Len(t, evaluation.Evaluations, 2)
	assert.Equal(t, float64(hr.QuestionMaxScore), evaluation.Evaluations[0].Score)
	assert.Zero(t, evaluation.Evaluations[1].Score)
	assert.Equal(t, 2, evaluation.Evaluations[1].QuestionNumber)
	assert.Equal(t, float64(40), evaluation.MaxScore)
	assert.InDelta(t, 50, evaluation.Percent(), 1e-9)
	assert.Contains(t, evaluation.OverallFeedback, "### Summary")
}

/*
TestDetectIntent maps phrases to booking flows.
*/
func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		intent  string
		flow    bool
	}{
		{"Can I book a test drive?", stubapi.IntentTestDrive, true},
		{"My car needs an oil change", stubapi.IntentService, true},
		{"I want to schedule something", stubapi.IntentBooking, true},
		{"What colours does the Model S come in?", stubapi.IntentGeneral, false},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			reply := stubapi.Reply(autosphere.ChatRequest{Message: tt.message})
			assert.Equal(t, tt.intent, reply.Intent)
			assert.Equal(t, tt.flow, reply.BookingFlow)
			assert.NotEmpty(t, reply.Response)
		})
	}
}

/*
TestBookingBook_Lifecycle covers create, search order, lookup and date resolution.
*/
func TestBookingBook_Lifecycle(t *testing.T) {
	clock := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	book := stubapi.NewBookingBook(func() time.Time { return clock })

	first := book.Create(autosphere.BookingCreate{
		BookingType: autosphere.BookingService, Name: " Ann ", Phone: "555", VehicleModel: "Model S",
		NaturalLanguage: pointer.To("tomorrow morning please"),
	})
	second := book.Create(autosphere.BookingCreate{
		BookingType: autosphere.BookingTestDrive, Name: "Bob", Phone: "555", VehicleModel: "Model 3",
		PreferredDate: pointer.To("2026-11-01"), NaturalLanguage: pointer.To("in 3 days"),
	})

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Ann", first.Name)
	assert.True(t, strings.HasPrefix(first.BookingID, stubapi.BookingPrefix+"-"))
	assert.Equal(t, "2026-10-15", pointer.Val(first.PreferredDate))
	assert.Equal(t, "2026-11-01", pointer.Val(second.PreferredDate))
	assert.Equal(t, "2026-10-14T09:00:00Z", first.CreatedAt)

	all := book.Search(autosphere.BookingQuery{Phone: "555"})
	require.Len(t, all, 2)
	assert.Equal(t, second.BookingID, all[0].BookingID)

	drives := book.Search(autosphere.BookingQuery{BookingType: autosphere.BookingTestDrive})
	require.Len(t, drives, 1)
	assert.Equal(t, "Bob", drives[0].Name)
	assert.NotNil(t, book.Search(autosphere.BookingQuery{Phone: "000"}))

	found, err := book.Get(strings.ToLower(first.BookingID))
	require.NoError(t, err)
	assert.Equal(t, first, found)

	_, err = book.Get("BK-MISSING")
	assert.EqualError(t, err, "Booking not found")
}
