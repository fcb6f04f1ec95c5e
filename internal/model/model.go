package model

// Contact is the data structure for a person in the contact book.
// All fields are mandatory; the Id field is assigned by the database.
type Contact struct {
	Id                    int64  `json:"id"                     db:"id"`
	FirstName             string `json:"first_name"             db:"first_name"`
	LastName              string `json:"last_name"              db:"last_name"`
	Email                 string `json:"email"                  db:"email"`
	ContactNumber         string `json:"contact_number"         db:"contact_number"`
	BirthDate             Date   `json:"birth_date"             db:"birth_date"`
	AdditionalInformation string `json:"additional_information" db:"additional_information"`
}
