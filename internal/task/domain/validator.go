package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgTitleRequired   = "Title is required."
	msgDueDateRequired = "Due date is required."
	msgDueDateInvalid  = "Due date must be a valid date (YYYY-MM-DD)."
	msgPriorityInvalid = "Priority must be low, medium or high."
)

// RawInput es lo que llega del formulario de la vista, sin tratar.
type RawInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

// formRules fija el orden de las reglas: validator devuelve los errores en el
// orden de declaración de los campos y solo se muestra el primero.
type formRules struct {
	Title    string `validate:"required"`
	DueDate  string `validate:"required,datetime=2006-01-02"`
	Priority string `validate:"omitempty,oneof=low medium high"`
}

var formMessages = map[string]map[string]string{
	"Title":    {"required": msgTitleRequired},
	"DueDate":  {"required": msgDueDateRequired, "datetime": msgDueDateInvalid},
	"Priority": {"oneof": msgPriorityInvalid},
}

var formFields = map[string]string{
	"Title":    "title",
	"DueDate":  "dueDate",
	"Priority": "priority",
}

// FormValidator convierte la entrada cruda en un Draft o en un ValidationError.
type FormValidator struct {
	v *validator.Validate
}

func NewFormValidator() *FormValidator {
	return &FormValidator{v: validator.New()}
}

// Validate aplica las reglas en orden y devuelve solo el primer fallo.
func (fv *FormValidator) Validate(raw RawInput) (Draft, error) {
	rules := formRules{
		Title:    strings.TrimSpace(raw.Title),
		DueDate:  strings.TrimSpace(raw.DueDate),
		Priority: strings.TrimSpace(raw.Priority),
	}

	if err := fv.v.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			msg, ok := formMessages[first.Field()][first.Tag()]
			if !ok {
				msg = first.Error()
			}
			return Draft{}, newValidationError(formFields[first.Field()], msg)
		}
		return Draft{}, err
	}

	return Draft{
		Title:       rules.Title,
		Description: raw.Description,
		DueDate:     rules.DueDate,
		Priority:    TaskPriority(rules.Priority).OrDefault(),
	}, nil
}
