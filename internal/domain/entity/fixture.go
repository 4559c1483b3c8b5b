package entity

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CustomerIdentity struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

type Users struct {
	Standard Credentials `json:"standard"`
	Invalid  Credentials `json:"invalid"`
}

type ErrorMessages struct {
	InvalidLogin string `json:"invalidLogin" validate:"required"`
}

// Fixture is the read-only test data shared by every scenario of a run.
type Fixture struct {
	Users         Users            `json:"users"`
	Customer      CustomerIdentity `json:"customer"`
	ErrorMessages ErrorMessages    `json:"errorMessages"`
}
