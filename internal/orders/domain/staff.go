package domain

import (
	"errors"
	"strings"
)

// StaffID représente l'identifiant d'un vendeur
type StaffID int64

// Staff représente un membre du personnel de vente
type Staff struct {
	id        StaffID
	firstName string
	lastName  string
}

// NewStaff crée un vendeur avec validation
func NewStaff(id StaffID, firstName, lastName string) (*Staff, error) {
	if firstName == "" && lastName == "" {
		return nil, errors.New("staff name cannot be empty")
	}
	return &Staff{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
	}, nil
}

// ID retourne l'identifiant du vendeur
func (s *Staff) ID() StaffID {
	return s.id
}

// FirstName retourne le prénom
func (s *Staff) FirstName() string {
	return s.firstName
}

// LastName retourne le nom
func (s *Staff) LastName() string {
	return s.lastName
}

// FullName retourne "Prénom Nom"
func (s *Staff) FullName() string {
	return strings.TrimSpace(s.firstName + " " + s.lastName)
}
