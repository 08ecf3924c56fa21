package ui

import (
	"fmt"
	"strings"

	"wellspring/internal/quiz"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type quizPage struct {
	session *quiz.Session
	started bool
	cursor  int
	result  quiz.Personality // set once all questions are answered
}

func newQuizPage() quizPage {
	return quizPage{session: quiz.NewSession()}
}

func (m Model) updateQuiz(msg tea.KeyMsg) (Model, tea.Cmd) {
	q := &m.quiz
	switch {
	case key.Matches(msg, m.keys.Reset):
		q.session.Restart()
		q.started, q.cursor, q.result = false, 0, ""
		return m, nil

	case q.result != "":
		if key.Matches(msg, m.keys.Select) {
			return m.enterPage(pageRitual)
		}

	case !q.started:
		if key.Matches(msg, m.keys.Select) {
			q.started = true
		}

	case key.Matches(msg, m.keys.Up):
		q.cursor = (q.cursor + 2) % 3
	case key.Matches(msg, m.keys.Down):
		q.cursor = (q.cursor + 1) % 3

	case key.Matches(msg, m.keys.Select):
		step := q.session.Step()
		answer := quiz.Questions()[step].Answers[q.cursor].Personality
		if !q.session.RecordAnswer(step, answer) {
			return m, nil
		}
		q.cursor = 0
		if q.session.Complete() {
			q.result = q.session.Result()
			ctx, cancel := m.opCtx()
			defer cancel()
			m.persistNotice("save your quiz result", m.deps.Profile.Save(ctx, q.result))
		}
	}
	return m, nil
}

func (m Model) viewQuiz() string {
	q := m.quiz
	var b strings.Builder

	switch {
	case q.result != "":
		d := quiz.Describe(q.result)
		b.WriteString(m.styles.Subtitle.Render("Your result"))
		b.WriteString("\n")
		b.WriteString(m.md.Render(fmt.Sprintf("# %s\n\n%s", d.Title, d.Blurb)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("enter: start today's ritual · R: retake the quiz"))

	case !q.started:
		b.WriteString(m.styles.Title.Render("Discover your inner rhythm"))
		b.WriteString("\n")
		b.WriteString(m.styles.Body.Render("Four quick questions. Pick what feels most like you."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.SelectedOption.Render("Let's go ›"))

	default:
		step := q.session.Step()
		question := quiz.Questions()[step]
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Question %d of %d", step+1, quiz.NumQuestions)))
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render(question.Prompt))
		b.WriteString("\n")
		for i, a := range question.Answers {
			if i == q.cursor {
				b.WriteString(m.styles.SelectedOption.Render(a.Text))
			} else {
				b.WriteString(m.styles.Option.Render(a.Text))
			}
			b.WriteString("\n")
		}
	}
	return m.styles.Card.Render(b.String())
}
