package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

var (
	bundle *goi18n.Bundle
	once   sync.Once
)

// Init loads the embedded locale files. Safe to call more than once.
func Init() {
	once.Do(func() {
		bundle = goi18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
		for _, name := range []string{"locales/active.en.json", "locales/active.tr.json"} {
			if _, err := bundle.LoadMessageFileFS(locales, name); err != nil {
				panic(err)
			}
		}
	})
}

// Localize renders messageID for the Accept-Language value. The fallback is
// returned when the message is unknown.
func Localize(acceptLanguage, messageID string, data map[string]interface{}, fallback string) string {
	Init()
	if messageID == "" {
		return fallback
	}
	loc := goi18n.NewLocalizer(bundle, acceptLanguage)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return fallback
	}
	return msg
}
