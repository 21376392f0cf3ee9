package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/quiz-generation-service/internal/errors"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// MaxQuestionsPerType bounds each requested question count.
const MaxQuestionsPerType = 15

type ValidationErrors = apperrors.ValidationErrors

// Validator checks request structs against their validate tags plus the
// quiz-specific rules registered in New.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	for tag, fn := range map[string]validator.Func{
		"difficulty_level": oneOf(models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard),
		"user_role":        oneOf(models.RoleStudent, models.RoleProfessor, models.RoleAdmin),
		// self-registration never grants admin
		"signup_role":    oneOf(models.RoleStudent, models.RoleProfessor),
		"question_count": questionCount,
		// question banks
		"bank_question_type": oneOf(models.BankMCQ, models.BankFillBlank, models.BankShortAnswer, models.BankLongAnswer),
		"has_correct_option": hasCorrectOption,
	} {
		// registration only fails on an empty tag
		_ = v.RegisterValidation(tag, fn)
	}

	return &Validator{validate: v}
}

// Validate returns ValidationErrors for tag failures and passes anything
// else (such as a non-struct argument) through unchanged.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func oneOf[T ~string](allowed ...T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if string(a) == value {
				return true
			}
		}
		return false
	}
}

func questionCount(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 0 && n <= MaxQuestionsPerType
}

// hasCorrectOption passes when at least one bank option is flagged correct.
func hasCorrectOption(fl validator.FieldLevel) bool {
	options, ok := fl.Field().Interface().([]models.BankOption)
	if !ok {
		return false
	}
	for _, opt := range options {
		if opt.IsCorrect {
			return true
		}
	}
	return false
}
