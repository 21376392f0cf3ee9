package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerSheet holds a student's answers keyed by the question's index in its array.
// MCQ values are option ordinals. WH answers are stored but never scored.
type AnswerSheet struct {
	MCQ map[int]int    `json:"mcq"`
	TF  map[int]bool   `json:"tf"`
	WH  map[int]string `json:"wh"`
}

// Normalized returns a copy with nil maps replaced by empty ones.
func (a AnswerSheet) Normalized() AnswerSheet {
	if a.MCQ == nil {
		a.MCQ = map[int]int{}
	}
	if a.TF == nil {
		a.TF = map[int]bool{}
	}
	if a.WH == nil {
		a.WH = map[int]string{}
	}
	return a
}

// Attempt is one graded submission. Score fields are frozen at creation.
type Attempt struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	QuizID      uint   `json:"quiz_id" gorm:"not null;index"`
	StudentID   string `json:"student_id" gorm:"not null;index;size:255"`
	StudentName string `json:"student_name" gorm:"size:100"`

	Answers datatypes.JSONType[AnswerSheet] `json:"answers"`

	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	Percentage     int       `json:"percentage" gorm:"not null"`
	CompletedAt    time.Time `json:"completed_at" gorm:"index"`

	// Relations
	Quiz *Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
}

func (Attempt) TableName() string {
	return "quiz_attempts"
}

// QuizStats aggregates attempts of one quiz.
type QuizStats struct {
	QuizID       uint    `json:"quiz_id"`
	AttemptCount int64   `json:"attempt_count"`
	AvgScore     float64 `json:"avg_score"`
}

// StudentStats summarizes a student's attempt history.
type StudentStats struct {
	TotalQuizzes int64   `json:"total_quizzes"`
	AvgScore     float64 `json:"avg_score"`
	BestScore    int     `json:"best_score"`
}
