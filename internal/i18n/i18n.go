// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package i18n resolves the display language and provides the message catalogs.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

//go:embed locale/*
var locales embed.FS

// Translator is a localizer together with the language it was resolved for. The tag is
// also what geocoders send as their result language.
type Translator struct {
	*spreak.Localizer
	Tag language.Tag
}

// New resolves loc and loads the matching catalog. An empty or unparsable locale is
// detected from the environment and falls back to English.
func New(loc string) (*Translator, error) {
	tag := resolve(loc)

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return &Translator{Localizer: spreak.NewLocalizer(bundle, tag), Tag: tag}, nil
}

func resolve(loc string) language.Tag {
	if loc != "" {
		if tag, err := language.Parse(loc); err == nil && tag != language.Und {
			return tag
		}
	}
	tag, err := locale.Detect()
	if err != nil || tag == language.Und {
		return language.English
	}
	return tag
}
