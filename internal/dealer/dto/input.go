package dto

import "github.com/fekuna/tagro-storefront-service/internal/model"

type DealerInput struct {
	ImageURL string                `json:"image"`
	Name     model.LocalizedString `json:"name"`
	Zone     model.LocalizedString `json:"zone"`
	Phone    string                `json:"phone"`
	Code     string                `json:"code"`
}
