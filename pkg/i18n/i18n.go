package i18n

import (
	"embed"
	"encoding/json"
	"path"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embedded embed.FS

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Init creates the global bundle and loads the embedded message files.
func Init() {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, _ := embedded.ReadDir("locales")
	for _, e := range entries {
		data, err := embedded.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, e.Name())
	}

	mu.Lock()
	bundle = b
	mu.Unlock()
}

// Load adds a message file from disk, overriding embedded messages with the same id.
func Load(file string) error {
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		return errors.New("i18n: Init must be called before Load")
	}
	_, err := bundle.LoadMessageFile(file)
	return errors.Wrapf(err, "load %s", file)
}

// T localizes messageID for lang. Unknown ids fall back to the id itself.
func T(lang, messageID string, data map[string]interface{}) string {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b == nil {
		return messageID
	}

	loc := goi18n.NewLocalizer(b, lang, language.English.String())
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
