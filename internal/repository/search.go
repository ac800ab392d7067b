package repository

import (
	"regexp"
	"strings"

	"github.com/userdirectory/user-service/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchFields are the user fields a search term is matched against.
var SearchFields = []string{
	models.FieldFirstName,
	models.FieldLastName,
	models.FieldEmail,
	models.FieldMobile,
	models.FieldCompany,
}

// SearchFilter builds a case-insensitive substring match of term across
// SearchFields, OR-ed together. The term is matched literally. A term that
// is empty after trimming yields an empty filter.
func SearchFilter(term string) bson.M {
	if strings.TrimSpace(term) == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	clauses := make(bson.A, 0, len(SearchFields))
	for _, field := range SearchFields {
		clauses = append(clauses, bson.M{field: pattern})
	}
	return bson.M{"$or": clauses}
}
