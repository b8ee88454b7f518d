package core

import (
	"context"
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

// Translator renders API messages in the language the client asked for.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

func NewTranslator(defaultLocale string) (*Translator, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"locales/active.en.toml", "locales/active.pt.toml"} {
		_, err = bundle.LoadMessageFileFS(localeFS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return &Translator{bundle: bundle, defaultLanguage: tag}, nil
}

// T falls back to the default language, then to the key itself.
func (t *Translator) T(ctx context.Context, acceptLanguage string, key string) string {
	localizer := i18n.NewLocalizer(t.bundle, acceptLanguage, t.defaultLanguage.String())

	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		log.Ctx(ctx).Warn().Str("component", "translator").Str("key", key).Err(err).Msg("missing translation")
		return key
	}

	return msg
}
