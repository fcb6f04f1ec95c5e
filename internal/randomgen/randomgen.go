// Package randomgen produces random but valid contact data for demo
// seeding and for tests that need pseudo-unique records.
package randomgen

import (
	"fmt"
	"math/rand"
	"time"

	"gitlab.com/akravets/contact-book/internal/model"
)

var firstNames = []string{
	"Anna", "Boris", "Clara", "Dmytro", "Erika", "Felix", "Greta", "Hans",
	"Iryna", "Jakub", "Karin", "Lukas", "Marta", "Nils", "Olha", "Pavlo",
}

var lastNames = []string{
	"Adler", "Bauer", "Czerny", "Dvorak", "Eder", "Fischer", "Gruber",
	"Huber", "Ivanenko", "Jung", "Koval", "Lang", "Moser", "Novak",
	"Orlyk", "Pichler",
}

// PickFirstName returns a random first name.
func PickFirstName() string {
	return firstNames[rand.Intn(len(firstNames))]
}

// PickLastName returns a random last name.
func PickLastName() string {
	return lastNames[rand.Intn(len(lastNames))]
}

// PickPhone returns a random phone number in one of the accepted layouts.
func PickPhone() string {
	a, b, c := rand.Intn(900)+100, rand.Intn(900)+100, rand.Intn(9000)+1000
	switch rand.Intn(4) {
	case 0:
		return fmt.Sprintf("%d-%d-%d", a, b, c)
	case 1:
		return fmt.Sprintf("(%d) %d-%d", a, b, c)
	case 2:
		return fmt.Sprintf("%d.%d.%d", a, b, c)
	default:
		return fmt.Sprintf("%d %d %d", a, b, c)
	}
}

// PickEmail returns a random email address built from the given names and a
// numeric suffix that makes collisions unlikely.
func PickEmail(firstName, lastName string) string {
	return fmt.Sprintf("%s.%s.%d@example.com", firstName, lastName, rand.Intn(1_000_000))
}

// PickBirthDate returns a random date between roughly 18 and 80 years ago.
func PickBirthDate() model.Date {
	now := time.Now().UTC()
	year := now.Year() - 18 - rand.Intn(63)
	month := time.Month(rand.Intn(12) + 1)
	day := rand.Intn(28) + 1
	return model.NewDate(year, month, day)
}

// PickContact returns a complete random contact that passes validation.
func PickContact() model.Contact {
	firstName := PickFirstName()
	lastName := PickLastName()
	return model.Contact{
		FirstName:             firstName,
		LastName:              lastName,
		Email:                 PickEmail(firstName, lastName),
		ContactNumber:         PickPhone(),
		BirthDate:             PickBirthDate(),
		AdditionalInformation: "generated for demo purposes",
	}
}
