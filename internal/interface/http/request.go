package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/college-hub/college-schedule/internal/application/query"
	"github.com/college-hub/college-schedule/internal/domain/shared"
	"github.com/college-hub/college-schedule/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST PARAMETERS
// ══════════════════════════════════════════════════════════════════════════════

// scheduleRequest - сырые параметры запроса расписания: имя группы из пути,
// границы диапазона из строки запроса.
type scheduleRequest struct {
	GroupName string `param:"groupName" validate:"required"`
	Start     string `param:"start" validate:"required,date"`
	End       string `param:"end" validate:"required,date"`
}

// newRequestValidator настраивает валидатор: имена полей в сообщениях берутся
// из тега param, тег date проверяет формат даты. Ошибка регистрации тега -
// ошибка программы, поэтому здесь panic.
func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("param"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("date", isDate); err != nil {
		panic(fmt.Sprintf("register date validation: %v", err))
	}

	return v
}

func isDate(fl validator.FieldLevel) bool {
	_, err := timeutil.ParseDate(fl.Field().String())
	return err == nil
}

// toQuery проверяет параметры и переводит их в запрос прикладного слоя.
// Любая ошибка - ValidationError.
func (req scheduleRequest) toQuery(v *validator.Validate) (query.GetGroupScheduleQuery, error) {
	if err := v.Struct(req); err != nil {
		return query.GetGroupScheduleQuery{}, shared.Validation("http", "GetGroupSchedule", validationMessage(err))
	}

	// Формат уже проверен тегом date
	start, _ := timeutil.ParseDate(req.Start)
	end, _ := timeutil.ParseDate(req.End)

	return query.GetGroupScheduleQuery{
		GroupName: req.GroupName,
		Start:     start,
		End:       end,
	}, nil
}

// validationMessage описывает первую ошибку валидации.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Некорректные параметры запроса."
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Параметр %s обязателен.", fe.Field())
	case "date":
		return fmt.Sprintf("Параметр %s должен быть датой в формате ГГГГ-ММ-ДД.", fe.Field())
	default:
		return fmt.Sprintf("Некорректный параметр %s.", fe.Field())
	}
}
