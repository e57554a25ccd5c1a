package model

import "time"

type BaseModel struct {
	ID        string    `db:"id" json:"id" bson:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt" bson:"updatedAt"`
}

type Language string

const (
	LangEN Language = "en"
	LangBN Language = "bn"
)

func ParseLanguage(s string) Language {
	if Language(s) == LangBN {
		return LangBN
	}
	return LangEN
}

// LocalizedString holds an English and a Bangla rendition of the same text.
type LocalizedString struct {
	EN string `json:"en" bson:"en" yaml:"en"`
	BN string `json:"bn" bson:"bn" yaml:"bn"`
}

func (s LocalizedString) Get(lang Language) string {
	if lang == LangBN && s.BN != "" {
		return s.BN
	}
	return s.EN
}

func (s *LocalizedString) Set(lang Language, value string) {
	switch lang {
	case LangBN:
		s.BN = value
	default:
		s.EN = value
	}
}
