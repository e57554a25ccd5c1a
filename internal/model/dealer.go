package model

import (
	"strings"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
)

// Dealer is a regional reseller shown in the public dealer directory.
type Dealer struct {
	BaseModel `yaml:",inline"`
	ImageURL  string          `json:"image" yaml:"image"`
	Name      LocalizedString `json:"name" yaml:"name"`
	Zone      LocalizedString `json:"zone" yaml:"zone"`
	Phone     string          `json:"phone" yaml:"phone"`
	Code      string          `json:"code" yaml:"code"`
}

func (d *Dealer) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Name.EN) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Zone.EN) == "" {
		missing = append(missing, "zone")
	}
	if strings.TrimSpace(d.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(d.Code) == "" {
		missing = append(missing, "code")
	}
	if len(missing) > 0 {
		return apperror.Validation("dealer %s required", strings.Join(missing, ", "))
	}
	return nil
}
