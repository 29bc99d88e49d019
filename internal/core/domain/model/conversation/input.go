package conversation

import (
	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
)

type InputKind int

const (
	InputText InputKind = iota + 1
	InputContact
	InputLocation
	InputChoice
)

func (k InputKind) String() string {
	switch k {
	case InputText:
		return "text"
	case InputContact:
		return "contact"
	case InputLocation:
		return "location"
	case InputChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Choices sent by the confirmation keyboard.
const (
	ChoiceConfirm = "confirm"
	ChoiceCancel  = "cancel"
)

// Input is one message from the chat, already classified by the transport.
// Only the field matching Kind is set.
type Input struct {
	Kind     InputKind
	Text     string
	Phone    string
	Location kernel.Location
	Choice   string
}

func TextInput(text string) Input {
	return Input{Kind: InputText, Text: text}
}

// ContactInput carries a phone number shared through the contact button.
func ContactInput(phone string) Input {
	return Input{Kind: InputContact, Phone: phone}
}

func LocationInput(loc kernel.Location) Input {
	return Input{Kind: InputLocation, Location: loc}
}

// ChoiceInput is a keyboard selection such as a service type code or
// ChoiceConfirm.
func ChoiceInput(choice string) Input {
	return Input{Kind: InputChoice, Choice: choice}
}
