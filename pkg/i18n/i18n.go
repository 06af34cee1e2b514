// Package i18n resuelve textos localizados almacenados como mapas locale->valor
// (columnas JSONB name/description del catálogo de módulos).
package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLocale es el locale de respaldo cuando no hay coincidencia.
const DefaultLocale = "en-GB"

// supportedTags declara los locales que el catálogo puede contener.
// El orden importa: el primero es el fallback del matcher.
var supportedTags = []language.Tag{
	language.MustParse("en-GB"),
	language.MustParse("fr-FR"),
	language.MustParse("fr-BE"),
	language.MustParse("nl-BE"),
	language.MustParse("nl-NL"),
	language.MustParse("de-DE"),
	language.MustParse("es-ES"),
	language.MustParse("it-IT"),
	language.MustParse("pt-PT"),
}

var matcher = language.NewMatcher(supportedTags)

// Resolve devuelve el valor del mapa localizado que mejor coincide con el
// Accept-Language recibido. Si el mapa no tiene ese locale, cae a en-GB y,
// en último caso, a cualquier valor presente.
func Resolve(values map[string]string, acceptLanguage string) string {
	if len(values) == 0 {
		return ""
	}

	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			_, idx, conf := matcher.Match(tags...)
			if conf > language.No {
				if v, ok := values[supportedTags[idx].String()]; ok && v != "" {
					return v
				}
			}
		}
	}

	if v, ok := values[DefaultLocale]; ok && v != "" {
		return v
	}
	// Último recurso: cualquier traducción disponible (orden de mapa, no determinista,
	// pero solo se llega aquí con catálogos incompletos).
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
