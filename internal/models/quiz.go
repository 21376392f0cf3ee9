package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMCQ QuestionType = "mcq"
	QuestionTF  QuestionType = "tf"
	QuestionWH  QuestionType = "wh"
)

// QuestionTypes lists the generated question families in generation order.
var QuestionTypes = []QuestionType{QuestionMCQ, QuestionTF, QuestionWH}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const DefaultQuizTitle = "Untitled Quiz"

// MCQOption keys follow the JSON shape the model is prompted to return.
type MCQOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type MCQQuestion struct {
	Question    string      `json:"question"`
	Options     []MCQOption `json:"options"`
	Explanation string      `json:"explanation"`
}

// CorrectIndex returns the ordinal of the first correct option, or -1.
func (q MCQQuestion) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// CorrectCount returns how many options are flagged correct.
func (q MCQQuestion) CorrectCount() int {
	n := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			n++
		}
	}
	return n
}

type TFQuestion struct {
	Question    string `json:"question"`
	Answer      bool   `json:"answer"`
	Explanation string `json:"explanation"`
}

// WHQuestion is a short-answer question; Answer is a reference answer only.
type WHQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Quiz struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Title      string     `json:"title" gorm:"not null;size:200"`
	Difficulty Difficulty `json:"difficulty" gorm:"size:10;default:medium"`
	SourceFile string     `json:"source_file,omitempty" gorm:"size:255"`

	MCQQuestions datatypes.JSONSlice[MCQQuestion] `json:"mcq_questions"`
	TFQuestions  datatypes.JSONSlice[TFQuestion]  `json:"tf_questions"`
	WHQuestions  datatypes.JSONSlice[WHQuestion]  `json:"wh_questions"`

	// Metadata
	CreatedBy   string    `json:"created_by" gorm:"not null;index;size:255"`
	CreatorName string    `json:"creator_name" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Attempts []Attempt `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionCount is the number of questions across all three types.
func (q *Quiz) QuestionCount() int {
	return len(q.MCQQuestions) + len(q.TFQuestions) + len(q.WHQuestions)
}

// EnsureArrays replaces nil question arrays with empty ones so they encode as [].
func (q *Quiz) EnsureArrays() {
	if q.MCQQuestions == nil {
		q.MCQQuestions = datatypes.JSONSlice[MCQQuestion]{}
	}
	if q.TFQuestions == nil {
		q.TFQuestions = datatypes.JSONSlice[TFQuestion]{}
	}
	if q.WHQuestions == nil {
		q.WHQuestions = datatypes.JSONSlice[WHQuestion]{}
	}
}

func (q *Quiz) BeforeSave(tx *gorm.DB) error {
	q.EnsureArrays()
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}
	if q.Title == "" {
		q.Title = DefaultQuizTitle
	}
	return nil
}

func (q *Quiz) AfterFind(tx *gorm.DB) error {
	q.EnsureArrays()
	return nil
}

// QuizSummary is a quiz row joined with its attempt aggregates.
type QuizSummary struct {
	Quiz
	AttemptCount int64   `json:"attempt_count"`
	AvgScore     float64 `json:"avg_score"`
}
