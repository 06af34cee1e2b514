package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beneflow/beneflow-api/pkg/i18n"
)

var catalogoWellness = map[string]string{
	"en-GB": "Wellness",
	"fr-FR": "Bien-être",
	"fr-BE": "Bien-être (BE)",
	"nl-NL": "Welzijn",
	"es-ES": "Bienestar",
}

func TestResolve_CoincidenciaExacta(t *testing.T) {
	assert.Equal(t, "Bien-être", i18n.Resolve(catalogoWellness, "fr-FR"))
	assert.Equal(t, "Bienestar", i18n.Resolve(catalogoWellness, "es-ES"))
}

func TestResolve_VarianteRegional(t *testing.T) {
	assert.Equal(t, "Bien-être (BE)", i18n.Resolve(catalogoWellness, "fr-BE"))
}

func TestResolve_AcceptLanguageConPesos(t *testing.T) {
	got := i18n.Resolve(catalogoWellness, "nl-NL;q=0.9, fr-FR;q=0.8")
	assert.Equal(t, "Welzijn", got)
}

func TestResolve_SinCabecera_FallbackEnGB(t *testing.T) {
	assert.Equal(t, "Wellness", i18n.Resolve(catalogoWellness, ""))
}

func TestResolve_LocaleNoSoportado_FallbackEnGB(t *testing.T) {
	assert.Equal(t, "Wellness", i18n.Resolve(catalogoWellness, "ja-JP"))
}

func TestResolve_CabeceraInvalida_FallbackEnGB(t *testing.T) {
	assert.Equal(t, "Wellness", i18n.Resolve(catalogoWellness, ";;;no-es-una-cabecera"))
}

func TestResolve_LocaleSoportadoPeroAusenteEnElMapa(t *testing.T) {
	// de-DE está soportado pero el catálogo no lo trae: cae a en-GB.
	assert.Equal(t, "Wellness", i18n.Resolve(catalogoWellness, "de-DE"))
}

func TestResolve_SinEnGB_CualquierValor(t *testing.T) {
	soloFrances := map[string]string{"fr-FR": "Bien-être"}
	assert.Equal(t, "Bien-être", i18n.Resolve(soloFrances, "ja-JP"))
}

func TestResolve_MapaVacio(t *testing.T) {
	assert.Equal(t, "", i18n.Resolve(nil, "fr-FR"))
	assert.Equal(t, "", i18n.Resolve(map[string]string{}, ""))
}
