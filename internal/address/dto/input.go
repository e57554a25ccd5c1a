package dto

import (
	"strings"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
)

type AddressInput struct {
	Division  string `json:"division"`
	District  string `json:"district"`
	Upazila   string `json:"upazila"`
	Details   string `json:"details"`
	IsDefault bool   `json:"isDefault"`
}

func (in *AddressInput) Normalize() {
	in.Division = strings.TrimSpace(in.Division)
	in.District = strings.TrimSpace(in.District)
	in.Upazila = strings.TrimSpace(in.Upazila)
	in.Details = strings.TrimSpace(in.Details)
}

func (in *AddressInput) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"division", in.Division},
		{"district", in.District},
		{"upazila", in.Upazila},
		{"details", in.Details},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperror.Validation("address %s required", strings.Join(missing, ", "))
	}
	return nil
}
