package rental

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks every record against its field constraints and returns a
// *MalformedRecordError for the first violation.
func Validate(records []Record) error {
	for _, r := range records {
		if err := validate.Struct(r); err != nil {
			return toMalformed(r.Row, err)
		}
	}
	return nil
}

func toMalformed(row int, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &MalformedRecordError{Row: row, Field: "record", Reason: err.Error()}
	}
	fe := verrs[0]

	reason := fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "missing value"
	case "gte":
		reason = "must be >= " + fe.Param()
	case "lte":
		reason = "must be <= " + fe.Param()
	}
	return &MalformedRecordError{
		Row:    row,
		Field:  fe.Field(),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reason,
	}
}
