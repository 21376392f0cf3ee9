package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BankQuestionType covers the hand-written question kinds a bank can hold.
type BankQuestionType string

const (
	BankMCQ         BankQuestionType = "mcq"
	BankFillBlank   BankQuestionType = "fill_blank"
	BankShortAnswer BankQuestionType = "short_answer"
	BankLongAnswer  BankQuestionType = "long_answer"
)

// QuestionBank is a named, hand-curated collection of questions kept apart
// from generated quizzes.
type QuestionBank struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;uniqueIndex;size:200"`
	CreatedBy   string    `json:"created_by" gorm:"not null;index;size:255"`
	CreatorName string    `json:"creator_name" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Questions []BankQuestion `json:"questions" gorm:"foreignKey:BankID;constraint:OnDelete:CASCADE"`
}

func (QuestionBank) TableName() string {
	return "question_banks"
}

func (b *QuestionBank) AfterFind(tx *gorm.DB) error {
	if b.Questions == nil {
		b.Questions = []BankQuestion{}
	}
	return nil
}

type BankOption struct {
	Text      string `json:"text" validate:"required,max=500"`
	IsCorrect bool   `json:"isCorrect"`
}

type BankQuestion struct {
	ID            uint                            `json:"id" gorm:"primaryKey"`
	BankID        uint                            `json:"bank_id" gorm:"not null;index"`
	Question      string                          `json:"question" gorm:"type:text;not null"`
	Type          BankQuestionType                `json:"type" gorm:"size:20;not null"`
	Options       datatypes.JSONSlice[BankOption] `json:"options"`
	CorrectAnswer string                          `json:"correct_answer" gorm:"type:text;not null"`
	CreatedAt     time.Time                       `json:"created_at"`
}

func (BankQuestion) TableName() string {
	return "bank_questions"
}

// BeforeSave keeps options only on multiple-choice questions.
func (q *BankQuestion) BeforeSave(tx *gorm.DB) error {
	if q.Type != BankMCQ || q.Options == nil {
		q.Options = datatypes.JSONSlice[BankOption]{}
	}
	return nil
}

// QuestionBankSummary is a bank row without its questions.
type QuestionBankSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	CreatedBy     string    `json:"created_by"`
	CreatorName   string    `json:"creator_name"`
	QuestionCount int64     `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}
