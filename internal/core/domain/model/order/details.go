package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/casper4088/quiz-bot/internal/core/domain/model/kernel"
	"github.com/casper4088/quiz-bot/internal/pkg/errs"
	"github.com/casper4088/quiz-bot/internal/pkg/guard"
)

const (
	NameMinLen     = 2
	NameMaxLen     = 100
	ProblemMinLen  = 5
	ProblemMaxLen  = 1000
	AddressMinLen  = 3
	AddressMaxLen  = 300
	PhoneMinDigits = 7
	PhoneMaxDigits = 15
)

var ErrDetailsIsNotConstructed = errors.New("Details must be created via NewDetails constructor")

// Details are the descriptive fields captured by the order form. They are set
// once when the order is created and never change afterwards.
type Details struct {
	serviceType ServiceType
	name        string
	phone       string
	problem     string
	address     string
	location    *kernel.Location

	guard guard.ConstructorGuard
}

// NewDetails validates every field and reports all failures together.
// Either address or location must be present.
func NewDetails(
	serviceType ServiceType,
	name, phone, problem, address string,
	location *kernel.Location,
) (Details, error) {
	d := Details{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setServiceType(serviceType),
		d.setName(name),
		d.setPhone(phone),
		d.setProblem(problem),
		d.setPlace(address, location),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsIsNotConstructed)
}

func (d Details) ServiceType() ServiceType {
	return d.serviceType
}

func (d Details) Name() string {
	return d.name
}

func (d Details) Phone() string {
	return d.phone
}

func (d Details) Problem() string {
	return d.problem
}

func (d Details) Address() string {
	return d.address
}

// Location returns nil when the requester typed an address instead.
func (d Details) Location() *kernel.Location {
	return d.location
}

func (d *Details) setServiceType(st ServiceType) error {
	if err := st.Validate(); err != nil {
		return err
	}
	d.serviceType = st
	return nil
}

func (d *Details) setName(name string) error {
	clean, err := NormalizeName(name)
	if err != nil {
		return err
	}
	d.name = clean
	return nil
}

func (d *Details) setPhone(phone string) error {
	clean, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	d.phone = clean
	return nil
}

func (d *Details) setProblem(problem string) error {
	clean, err := NormalizeProblem(problem)
	if err != nil {
		return err
	}
	d.problem = clean
	return nil
}

func (d *Details) setPlace(address string, location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
		loc := *location
		d.location = &loc
	}

	if strings.TrimSpace(address) == "" {
		if d.location == nil {
			return errs.NewValueIsRequiredError("address or location")
		}
		return nil
	}

	clean, err := NormalizeAddress(address)
	if err != nil {
		return err
	}
	d.address = clean
	return nil
}

// NormalizeName trims the requester name and checks its length.
func NormalizeName(raw string) (string, error) {
	return normalizeText("name", raw, NameMinLen, NameMaxLen)
}

// NormalizeProblem trims the problem description and checks its length.
func NormalizeProblem(raw string) (string, error) {
	return normalizeText("problem", raw, ProblemMinLen, ProblemMaxLen)
}

// NormalizeAddress trims a typed address and checks its length.
func NormalizeAddress(raw string) (string, error) {
	return normalizeText("address", raw, AddressMinLen, AddressMaxLen)
}

// NormalizePhone strips spaces, dashes, dots and parentheses and keeps an
// optional leading "+". The result must hold PhoneMinDigits..PhoneMaxDigits digits.
//
//	NormalizePhone("+998 (90) 123-45-67") // "+998901234567"
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError("phone")
	}

	var b strings.Builder
	digits := 0
	for i, r := range trimmed {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case unicode.IsDigit(r):
			b.WriteRune(r)
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}

	if digits < PhoneMinDigits || digits > PhoneMaxDigits {
		return "", errs.NewValueIsOutOfRangeError("phone digits", digits, PhoneMinDigits, PhoneMaxDigits)
	}
	return b.String(), nil
}

func normalizeText(param, raw string, minLen, maxLen int) (string, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	if n := utf8.RuneCountInString(clean); n < minLen || n > maxLen {
		return "", errs.NewValueIsOutOfRangeError(param+" length", n, minLen, maxLen)
	}
	return clean, nil
}
