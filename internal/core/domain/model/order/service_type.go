package order

import (
	"fmt"
	"strings"

	"github.com/casper4088/quiz-bot/internal/pkg/errs"
)

// ServiceType is the kind of help a requester asks for.
type ServiceType int

const (
	UnknownServiceType ServiceType = iota
	Repair
	Installation
	Maintenance
	Consultation
	OtherService
)

func getServiceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		UnknownServiceType: "unknown",
		Repair:             "repair",
		Installation:       "installation",
		Maintenance:        "maintenance",
		Consultation:       "consultation",
		OtherService:       "other",
	}
}

// ServiceTypes lists the choices offered by the order form.
func ServiceTypes() []ServiceType {
	return []ServiceType{Repair, Installation, Maintenance, Consultation, OtherService}
}

// ParseServiceType matches raw against the service type codes, ignoring case.
func ParseServiceType(raw string) (ServiceType, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, st := range ServiceTypes() {
		if st.String() == needle {
			return st, nil
		}
	}
	return UnknownServiceType, errs.NewValueIsInvalidErrorWithCause(
		"service type", fmt.Errorf("%q is not a known service type", raw))
}

func (s ServiceType) Validate() error {
	if s < Repair || s > OtherService {
		return errs.NewValueIsInvalidErrorWithCause(
			"service type", fmt.Errorf("%d is not a known service type", s))
	}
	return nil
}

func (s ServiceType) String() string {
	if str, ok := getServiceTypeStrings()[s]; ok {
		return str
	}
	return "unknown"
}
