package models

import (
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserNotFound is returned when an identifier does not resolve to a stored user.
var ErrUserNotFound = errors.New("user not found")

// Field names of the declared user schema, as stored in MongoDB and rendered in JSON.
const (
	FieldID        = "_id"
	FieldFirstName = "firstname"
	FieldLastName  = "lastname"
	FieldEmail     = "email"
	FieldMobile    = "mob"
	FieldImage     = "image"
	FieldCompany   = "company"
	FieldActive    = "active"
)

var declaredFields = []string{
	FieldID, FieldFirstName, FieldLastName, FieldEmail,
	FieldMobile, FieldImage, FieldCompany, FieldActive,
}

var textFields = []string{
	FieldFirstName, FieldLastName, FieldEmail,
	FieldMobile, FieldImage, FieldCompany,
}

// User is a stored user document. Keys outside the declared schema are kept
// in Extra and rendered next to the declared fields.
//
// An empty text field is rendered only when the document stored it, as ""
// or null. Users decoded from MongoDB or JSON know which fields were stored;
// a User built in code renders its non-empty text fields.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"firstname,omitempty" json:"firstname"`
	LastName  string             `bson:"lastname,omitempty" json:"lastname"`
	Email     string             `bson:"email,omitempty" json:"email"`
	Mobile    string             `bson:"mob,omitempty" json:"mob"`
	Image     string             `bson:"image,omitempty" json:"image"`
	Company   string             `bson:"company,omitempty" json:"company"`
	Active    bool               `bson:"active" json:"active"`
	Extra     bson.M             `bson:",inline" json:"-"`

	// stored maps each text field present in the document to whether it
	// held null.
	stored map[string]bool
}

type userFields User

// UserFromDocument builds a User from a decoded MongoDB document. A declared
// field holding a value of the wrong type is kept in Extra as stored.
func UserFromDocument(doc bson.M) *User {
	user := &User{}
	for k, v := range doc {
		switch k {
		case FieldID:
			if oid, ok := v.(primitive.ObjectID); ok {
				user.ID = oid
				continue
			}
		case FieldActive:
			if b, ok := v.(bool); ok {
				user.Active = b
				continue
			}
		case FieldFirstName, FieldLastName, FieldEmail, FieldMobile, FieldImage, FieldCompany:
			if v == nil {
				user.markStored(k, true)
				continue
			}
			if s, ok := v.(string); ok {
				*user.textField(k) = s
				user.markStored(k, false)
				continue
			}
		}
		if user.Extra == nil {
			user.Extra = bson.M{}
		}
		user.Extra[k] = v
	}
	return user
}

// UnmarshalBSON decodes a raw MongoDB document, remembering which text
// fields it stored.
func (u *User) UnmarshalBSON(data []byte) error {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*u = *UserFromDocument(doc)
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(userFields(u))
	if err != nil {
		return nil, err
	}

	var known map[string]json.RawMessage
	if err := json.Unmarshal(base, &known); err != nil {
		return nil, err
	}
	for _, k := range textFields {
		isNull, ok := u.stored[k]
		switch {
		case ok && isNull:
			known[k] = json.RawMessage("null")
		case !ok && string(known[k]) == `""`:
			delete(known, k)
		}
	}

	merged := make(map[string]any, len(known)+len(u.Extra))
	for k, v := range u.Extra {
		merged[k] = v
	}
	// Declared fields win over extras with the same key.
	for k, v := range known {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var fields userFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	*u = User(fields)
	u.Extra = nil
	u.stored = nil
	for _, k := range textFields {
		if v, ok := all[k]; ok {
			u.markStored(k, v == nil)
		}
	}
	for _, k := range declaredFields {
		delete(all, k)
	}
	if len(all) > 0 {
		u.Extra = bson.M(all)
	}
	return nil
}

func (u *User) markStored(field string, isNull bool) {
	if u.stored == nil {
		u.stored = make(map[string]bool, len(textFields))
	}
	u.stored[field] = isNull
}

func (u *User) textField(field string) *string {
	switch field {
	case FieldFirstName:
		return &u.FirstName
	case FieldLastName:
		return &u.LastName
	case FieldEmail:
		return &u.Email
	case FieldMobile:
		return &u.Mobile
	case FieldImage:
		return &u.Image
	default:
		return &u.Company
	}
}
