// Package quiz runs the four-question personality quiz.
package quiz

import (
	"fmt"
	"strings"
)

// Personality is both a quiz answer and the quiz result.
type Personality string

const (
	Soul   Personality = "soul"
	Spark  Personality = "spark"
	Seeker Personality = "seeker"
)

// Personalities lists every personality in tie-break order.
var Personalities = []Personality{Soul, Spark, Seeker}

// Valid reports whether p is a known personality.
func (p Personality) Valid() bool {
	switch p {
	case Soul, Spark, Seeker:
		return true
	}
	return false
}

// ParsePersonality accepts a personality name in any case.
func ParsePersonality(s string) (Personality, error) {
	p := Personality(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown personality %q", s)
	}
	return p, nil
}

// Answer is one selectable option of a question.
type Answer struct {
	Text        string
	Personality Personality
}

// Question is a quiz prompt with one answer per personality.
type Question struct {
	Prompt  string
	Answers [3]Answer
}

// NumQuestions is the fixed quiz length.
const NumQuestions = 4

var questions = [NumQuestions]Question{
	{
		Prompt: "What does your ideal morning look like?",
		Answers: [3]Answer{
			{"☕ A slow start with tea and journaling", Soul},
			{"🏃 A run, goals review, and ready to hustle", Spark},
			{"🎶 Music on, no plan, just flow", Seeker},
		},
	},
	{
		Prompt: "How do you handle a stressful day?",
		Answers: [3]Answer{
			{"🌲 I retreat, reflect, and find stillness", Soul},
			{"💥 I push through and stay productive", Spark},
			{"🌧 I ride the wave of emotions and let it pass", Seeker},
		},
	},
	{
		Prompt: "Where would you rather spend a weekend?",
		Answers: [3]Answer{
			{"🌿 A quiet cabin in the woods", Soul},
			{"🌆 A bustling city full of ambition", Spark},
			{"🌊 A beach with crashing waves and open skies", Seeker},
		},
	},
	{
		Prompt: "What matters most to you right now?",
		Answers: [3]Answer{
			{"⚖️ Balance and well-being", Soul},
			{"🎯 Goals and achievement", Spark},
			{"✨ Feeling and inspiration", Seeker},
		},
	},
}

// Questions returns the quiz questions in order.
func Questions() []Question {
	return append([]Question(nil), questions[:]...)
}

// ComputeResult returns the personality with the most answers. Ties go to the
// first of soul, spark, seeker; no answers yields seeker.
func ComputeResult(answers []Personality) Personality {
	counts := make(map[Personality]int, len(Personalities))
	for _, a := range answers {
		counts[a]++
	}
	best, bestCount := Seeker, 0
	for _, p := range Personalities {
		if counts[p] > bestCount {
			best, bestCount = p, counts[p]
		}
	}
	return best
}

// Session collects answers for one run of the quiz.
type Session struct {
	answers []Personality
}

// NewSession starts an empty quiz.
func NewSession() *Session {
	return &Session{}
}

// RecordAnswer appends answer for question questionIndex. It does nothing and
// returns false if the index is out of range, the answer is unknown, or the
// quiz already holds four answers.
func (s *Session) RecordAnswer(questionIndex int, answer Personality) bool {
	if questionIndex < 0 || questionIndex >= NumQuestions {
		return false
	}
	if !answer.Valid() || len(s.answers) >= NumQuestions {
		return false
	}
	s.answers = append(s.answers, answer)
	return true
}

// Step is the index of the next unanswered question.
func (s *Session) Step() int { return len(s.answers) }

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() []Personality {
	return append([]Personality(nil), s.answers...)
}

// Complete reports whether all four questions are answered.
func (s *Session) Complete() bool { return len(s.answers) == NumQuestions }

// Result is ComputeResult over the recorded answers.
func (s *Session) Result() Personality { return ComputeResult(s.answers) }

// Restart discards every answer.
func (s *Session) Restart() { s.answers = nil }

// Description is the result card copy for a personality.
type Description struct {
	Title string
	Blurb string
	Mood  string // mood category the personality leans toward
}

// Describe returns the result card for p.
func Describe(p Personality) Description {
	switch p {
	case Soul:
		return Description{
			Title: "Grounded Soul",
			Blurb: "You draw strength from stillness. Calm rituals, quiet reflection and small kind acts keep you centered.",
			Mood:  "grounded",
		}
	case Spark:
		return Description{
			Title: "Driven Spark",
			Blurb: "You light up when you move toward a goal. Clear plans and bold steps turn your energy into progress.",
			Mood:  "driven",
		}
	}
	return Description{
		Title: "Flowing Seeker",
		Blurb: "You follow feeling and inspiration. Play, music and the unexpected open new paths for you.",
		Mood:  "flow",
	}
}
