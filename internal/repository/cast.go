package repository

import (
	"fmt"
	"strconv"

	"github.com/userdirectory/user-service/shared/models"
	"go.mongodb.org/mongo-driver/bson"
)

var stringFields = map[string]bool{
	models.FieldFirstName: true,
	models.FieldLastName:  true,
	models.FieldEmail:     true,
	models.FieldMobile:    true,
	models.FieldImage:     true,
	models.FieldCompany:   true,
}

// castFields copies a request body into a document, coercing declared fields
// to their schema types. The identifier is never taken from the body.
// Undeclared keys pass through untouched.
func castFields(fields map[string]any) (bson.M, error) {
	doc := make(bson.M, len(fields))
	for k, v := range fields {
		switch {
		case k == models.FieldID:
			continue
		case k == models.FieldActive:
			b, err := castBool(v)
			if err != nil {
				return nil, fmt.Errorf("cast to boolean failed for %q: %w", k, err)
			}
			doc[k] = b
		case stringFields[k]:
			s, err := castString(v)
			if err != nil {
				return nil, fmt.Errorf("cast to string failed for %q: %w", k, err)
			}
			doc[k] = s
		default:
			doc[k] = v
		}
	}
	return doc, nil
}

func castString(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

func castBool(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case string:
		switch t {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	case float64:
		switch t {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}
	return nil, fmt.Errorf("unsupported value %v", v)
}
