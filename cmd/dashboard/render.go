// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taibuivan/aidash/internal/autosphere"
	"github.com/taibuivan/aidash/internal/hr"
	"github.com/taibuivan/aidash/internal/nav"
	"github.com/taibuivan/aidash/internal/textfmt"
	"github.com/taibuivan/aidash/pkg/pointer"
)

// # Theme

// theme holds the terminal styles. Colours follow the web dashboard's palette.
type theme struct {
	title   lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	bands   map[hr.Band]lipgloss.Style
	prose   textfmt.Style
}

func newTheme() theme {
	return theme{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1976d2")),
		section: lipgloss.NewStyle().Bold(true).Underline(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#2e7d32")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#d32f2f")),
		muted:   lipgloss.NewStyle().Faint(true),
		bands: map[hr.Band]lipgloss.Style{
			hr.BandGood: lipgloss.NewStyle().Foreground(lipgloss.Color("#4caf50")),
			hr.BandFair: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9800")),
			hr.BandPoor: lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336")),
		},
		prose: textfmt.DefaultStyle(),
	}
}

// text returns the prose style, optionally with plain headings.
func (style theme) text(plain bool) textfmt.Style {
	prose := style.prose
	if plain {
		prose.Heading = textfmt.HeadingPlain
	}
	return prose
}

func (style theme) band(band hr.Band, text string) string {
	return style.bands[band].Render(text)
}

// # Navigation

func renderMenu(env *environment, groups []nav.Group) {
	for _, group := range groups {
		if group.Section != "" {
			fmt.Fprintln(env.out, env.style.section.Render(group.Section))
		}
		for _, entry := range group.Entries {
			fmt.Fprintf(env.out, "  %-22s %s\n", entry.Label, env.style.muted.Render(entry.Path))
		}
	}
}

// # HR AI Platform

func renderCVEvaluation(env *environment, evaluation hr.CVEvaluation) {
	kpis := evaluation.ExecutiveKPIs
	fmt.Fprintln(env.out, env.style.title.Render("Executive Summary"))
	fmt.Fprintf(env.out, "  Candidates: %d   Average match: %.1f%%   Top score: %.1f%%   Top 5: %d\n\n",
		kpis.TotalCandidates, kpis.AverageMatch, kpis.TopScore, kpis.Top5Count)

	for rank, result := range evaluation.Results {
		score := env.style.band(hr.ScoreBand(result.Score), fmt.Sprintf("%.1f%%", result.Score))
		recommendation := result.HireRecommendation
		verdict := env.style.band(hr.RecommendationBand(recommendation.Recommendation), recommendation.Recommendation)

		fmt.Fprintf(env.out, "%s %s  %s\n", env.style.title.Render(fmt.Sprintf("#%d", rank+1)), result.Name, score)
		fmt.Fprintf(env.out, "  %s (confidence %.0f%%, risk %s)\n", verdict, recommendation.Confidence, recommendation.RiskLevel)
		renderSkills(env, "Strong", result.SkillStatus.Strong)
		renderSkills(env, "Missing", result.SkillStatus.Missing)
		renderSkills(env, "Absent", result.SkillStatus.Absent)
		if len(result.SkillScores) > 0 {
			fmt.Fprintf(env.out, "  Skill scores: %s\n", skillScores(result.SkillScores))
		}
		if result.Evaluation != "" {
			fmt.Fprintln(env.out, indent(textfmt.Format(result.Evaluation, env.style.prose)))
		}
		fmt.Fprintln(env.out)
	}
}

func renderSkills(env *environment, label string, skills []string) {
	if len(skills) == 0 {
		return
	}
	fmt.Fprintf(env.out, "  %-8s %s\n", label+":", strings.Join(skills, ", "))
}

// skillScores lists scores highest first, ties by name.
func skillScores(scores map[string]float64) string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %.0f", name, scores[name])
	}
	return strings.Join(parts, ", ")
}

func renderTechnicalEvaluation(env *environment, evaluation hr.TechnicalEvaluation) {
	for _, item := range evaluation.Evaluations {
		score := env.style.band(hr.QuestionBand(item.Score), fmt.Sprintf("%.0f/%d", item.Score, hr.QuestionMaxScore))
		fmt.Fprintf(env.out, "%s %s  %s\n", env.style.title.Render(fmt.Sprintf("Q%d.", item.QuestionNumber)), item.Question, score)
		fmt.Fprintln(env.out, indent(textfmt.Format(item.Feedback, env.style.prose)))
	}

	total := fmt.Sprintf("Total: %.0f/%.0f (%.0f%%)", evaluation.TotalScore, evaluation.MaxScore, evaluation.Percent())
	fmt.Fprintln(env.out)
	fmt.Fprintln(env.out, env.style.band(hr.ScoreBand(evaluation.Percent()), total))
	if evaluation.OverallFeedback != "" {
		fmt.Fprintln(env.out, textfmt.Format(evaluation.OverallFeedback, env.style.prose))
	}
}

// # AutoSphere Motors

func renderBookings(env *environment, bookings []autosphere.Booking) {
	if len(bookings) == 0 {
		fmt.Fprintln(env.out, env.style.muted.Render("No bookings found"))
		return
	}
	for _, booking := range bookings {
		date := pointer.Val(booking.PreferredDate)
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(env.out, "%s  %-10s %-20s %-14s %-16s %s\n",
			env.style.title.Render(booking.BookingID), booking.BookingType, booking.Name,
			booking.Phone, booking.VehicleModel, date)
	}
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
