package export

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes the characters LaTeX treats as markup.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

// LaTeX renders a quiz as a standalone article with an answer after each question.
// Empty question types are left out.
func LaTeX(quiz *models.Quiz) []byte {
	var b strings.Builder

	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	b.WriteString("\\usepackage{enumitem}\n")
	fmt.Fprintf(&b, "\\title{%s}\n", EscapeLaTeX(quiz.Title))
	b.WriteString("\\date{}\n")
	b.WriteString("\\begin{document}\n")
	b.WriteString("\\maketitle\n\n")

	if len(quiz.MCQQuestions) > 0 {
		b.WriteString("\\section*{Multiple Choice}\n")
		b.WriteString("\\begin{enumerate}\n")
		for _, q := range quiz.MCQQuestions {
			fmt.Fprintf(&b, "  \\item %s\n", EscapeLaTeX(q.Question))
			b.WriteString("  \\begin{enumerate}[label=(\\alph*)]\n")
			for _, opt := range q.Options {
				fmt.Fprintf(&b, "    \\item %s\n", EscapeLaTeX(opt.Text))
			}
			b.WriteString("  \\end{enumerate}\n")
			if idx := q.CorrectIndex(); idx >= 0 {
				fmt.Fprintf(&b, "  \\textbf{Answer:} (%c) %s\n", 'a'+idx, EscapeLaTeX(q.Options[idx].Text))
			}
			writeExplanation(&b, q.Explanation)
			b.WriteString("\n")
		}
		b.WriteString("\\end{enumerate}\n\n")
	}

	if len(quiz.TFQuestions) > 0 {
		b.WriteString("\\section*{True or False}\n")
		b.WriteString("\\begin{enumerate}\n")
		for _, q := range quiz.TFQuestions {
			fmt.Fprintf(&b, "  \\item %s\n", EscapeLaTeX(q.Question))
			answer := "False"
			if q.Answer {
				answer = "True"
			}
			fmt.Fprintf(&b, "  \\textbf{Answer:} %s\n", answer)
			writeExplanation(&b, q.Explanation)
			b.WriteString("\n")
		}
		b.WriteString("\\end{enumerate}\n\n")
	}

	if len(quiz.WHQuestions) > 0 {
		b.WriteString("\\section*{Short Answer}\n")
		b.WriteString("\\begin{enumerate}\n")
		for _, q := range quiz.WHQuestions {
			fmt.Fprintf(&b, "  \\item %s\n", EscapeLaTeX(q.Question))
			fmt.Fprintf(&b, "  \\textbf{Answer:} %s\n\n", EscapeLaTeX(q.Answer))
		}
		b.WriteString("\\end{enumerate}\n\n")
	}

	b.WriteString("\\end{document}\n")
	return []byte(b.String())
}

// BankLaTeX renders a question bank as one numbered list, options under
// multiple-choice items and the stored answer after every question.
func BankLaTeX(bank *models.QuestionBank) []byte {
	var b strings.Builder

	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	b.WriteString("\\usepackage{enumitem}\n")
	b.WriteString("\\begin{document}\n\n")
	fmt.Fprintf(&b, "\\section*{%s}\n\n", EscapeLaTeX(bank.Title))

	if len(bank.Questions) == 0 {
		b.WriteString("No questions yet.\n\n")
	} else {
		b.WriteString("\\begin{enumerate}\n")
		for _, q := range bank.Questions {
			fmt.Fprintf(&b, "  \\item %s\n", EscapeLaTeX(q.Question))
			if q.Type == models.BankMCQ && len(q.Options) > 0 {
				b.WriteString("  \\begin{enumerate}[label=(\\alph*)]\n")
				for _, opt := range q.Options {
					fmt.Fprintf(&b, "    \\item %s\n", EscapeLaTeX(opt.Text))
				}
				b.WriteString("  \\end{enumerate}\n")
			}
			fmt.Fprintf(&b, "  \\textbf{Answer:} %s\n\n", EscapeLaTeX(q.CorrectAnswer))
		}
		b.WriteString("\\end{enumerate}\n\n")
	}

	b.WriteString("\\end{document}\n")
	return []byte(b.String())
}

func BankLaTeXFilename(bank *models.QuestionBank) string {
	return slug(bank.Title, bank.ID) + ".tex"
}

func writeExplanation(b *strings.Builder, explanation string) {
	if explanation == "" {
		return
	}
	fmt.Fprintf(b, "\n  \\emph{%s}\n", EscapeLaTeX(explanation))
}

// LaTeXFilename derives a download name from the quiz title.
func LaTeXFilename(quiz *models.Quiz) string {
	return slug(quiz.Title, quiz.ID) + ".tex"
}

func slug(title string, id uint) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "quiz"
	}
	return fmt.Sprintf("%s-%d", name, id)
}
