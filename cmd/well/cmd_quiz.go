package main

import (
	"context"
	"fmt"
	"strings"

	"wellspring/internal/quiz"

	"github.com/spf13/cobra"
)

var quizAnswers []string

// quizCmd runs the personality quiz
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the personality quiz",
	Long: `Asks four questions and saves your personality type.

Answers can be given up front, one per question, either as the option
letter (a, b, c) or as a type name (soul, spark, seeker):

  well quiz --answers a,b,a,c`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().StringSliceVar(&quizAnswers, "answers", nil, "Comma-separated answers, one per question")
}

// parseAnswer maps a letter or type name to the personality it picks for q.
func parseAnswer(q quiz.Question, s string) (quiz.Personality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= 'a' && s[0] < 'a'+byte(len(q.Answers)) {
		return q.Answers[s[0]-'a'].Personality, nil
	}
	return quiz.ParsePersonality(s)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()
	questions := quiz.Questions()

	if len(quizAnswers) != 0 && len(quizAnswers) != quiz.NumQuestions {
		return fmt.Errorf("--answers needs %d values, got %d", quiz.NumQuestions, len(quizAnswers))
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	session := quiz.NewSession()
	p := newPrompter(cmd.InOrStdin(), out)
	for i, q := range questions {
		var answer quiz.Personality
		if len(quizAnswers) > 0 {
			answer, err = parseAnswer(q, quizAnswers[i])
			if err != nil {
				return fmt.Errorf("answer %d: %w", i+1, err)
			}
		} else {
			fmt.Fprintf(out, "\n%d/%d %s\n", i+1, quiz.NumQuestions, q.Prompt)
			opts := make([]string, len(q.Answers))
			for j, ans := range q.Answers {
				opts[j] = ans.Text
			}
			idx, err := p.choose(opts)
			if err != nil {
				return err
			}
			answer = q.Answers[idx].Personality
		}
		session.RecordAnswer(i, answer)
	}

	result := session.Result()
	d := quiz.Describe(result)
	fmt.Fprintf(out, "\nYou are a %s.\n%s\n", d.Title, d.Blurb)

	if err := a.profile.Save(ctx, result); err != nil {
		fmt.Fprintf(out, "Warning: couldn't save your result: %v\n", err)
	}
	return nil
}
