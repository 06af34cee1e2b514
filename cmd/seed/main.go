// seed genera el script SQL que puebla el catálogo de módulos con sus UUIDs
// fijos y los nombres/descripciones localizados.
//
// Uso: go run ./cmd/seed
// Escribe: internal/infrastructure/postgres/migrations/002_seed_modules.sql
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// seedModule es una fila del catálogo a generar. Los UUIDs son fijos para que
// todos los entornos identifiquen los mismos módulos.
type seedModule struct {
	id          string
	name        map[string]string
	description map[string]string
	category    string
	isCore      bool
}

func modules() []seedModule {
	return []seedModule{
		{
			id: "550e8400-e29b-41d4-a716-446655440001",
			name: map[string]string{
				"en-GB": "Internal Link",
				"fr-FR": "Lien Interne", "fr-BE": "Lien Interne",
				"nl-NL": "Interne Link", "nl-BE": "Interne Link",
				"de-DE": "Interner Link",
				"es-ES": "Enlace Interno",
				"it-IT": "Link Interno",
				"pt-PT": "Link Interno",
			},
			description: map[string]string{
				"en-GB": "This module is about HR tools",
				"fr-FR": "Ce module concerne les outils RH", "fr-BE": "Ce module concerne les outils RH",
				"nl-NL": "Deze module gaat over HR-tools", "nl-BE": "Deze module gaat over HR-tools",
				"de-DE": "Dieses Modul behandelt HR-Tools",
				"es-ES": "Este módulo trata sobre herramientas de RRHH",
				"it-IT": "Questo modulo riguarda gli strumenti HR",
				"pt-PT": "Este módulo é sobre ferramentas de RH",
			},
			category: entity.ModuleCategoryHR,
			isCore:   true,
		},
		{
			id: "550e8400-e29b-41d4-a716-446655440002",
			name: map[string]string{
				"en-GB": "Internal Communication",
				"fr-FR": "Communication Interne", "fr-BE": "Communication Interne",
				"nl-NL": "Interne Communicatie", "nl-BE": "Interne Communicatie",
				"de-DE": "Interne Kommunikation",
				"es-ES": "Comunicación Interna",
				"it-IT": "Comunicazione Interna",
				"pt-PT": "Comunicação Interna",
			},
			description: map[string]string{
				"en-GB": "This module is about HR space",
				"fr-FR": "Ce module concerne l'espace RH", "fr-BE": "Ce module concerne l'espace RH",
				"nl-NL": "Deze module gaat over de HR-ruimte", "nl-BE": "Deze module gaat over de HR-ruimte",
				"de-DE": "Dieses Modul behandelt den HR-Bereich",
				"es-ES": "Este módulo trata sobre el espacio de RRHH",
				"it-IT": "Questo modulo riguarda lo spazio HR",
				"pt-PT": "Este módulo é sobre o espaço de RH",
			},
			category: entity.ModuleCategoryCommunication,
			isCore:   true,
		},
		{
			id: "550e8400-e29b-41d4-a716-446655440003",
			name: map[string]string{
				"en-GB": "Wellness",
				"fr-FR": "Bien-être", "fr-BE": "Bien-être",
				"nl-NL": "Welzijn", "nl-BE": "Welzijn",
				"de-DE": "Wohlbefinden",
				"es-ES": "Bienestar",
				"it-IT": "Benessere",
				"pt-PT": "Bem-estar",
			},
			description: map[string]string{
				"en-GB": "This module is about wellness",
				"fr-FR": "Ce module concerne le bien-être", "fr-BE": "Ce module concerne le bien-être",
				"nl-NL": "Deze module gaat over welzijn", "nl-BE": "Deze module gaat over welzijn",
				"de-DE": "Dieses Modul behandelt das Wohlbefinden",
				"es-ES": "Este módulo trata sobre el bienestar",
				"it-IT": "Questo modulo riguarda il benessere",
				"pt-PT": "Este módulo é sobre bem-estar",
			},
			category: entity.ModuleCategoryWellness,
		},
		{
			id: "550e8400-e29b-41d4-a716-446655440004",
			name: map[string]string{
				"en-GB": "Vouchers",
				"fr-FR": "Bons d'achat", "fr-BE": "Bons d'achat",
				"nl-NL": "Bonnen", "nl-BE": "Bonnen",
				"de-DE": "Gutscheine",
				"es-ES": "Vales",
				"it-IT": "Buoni",
				"pt-PT": "Vales",
			},
			description: map[string]string{
				"en-GB": "This module is about vouchers",
				"fr-FR": "Ce module concerne les bons d'achat", "fr-BE": "Ce module concerne les bons d'achat",
				"nl-NL": "Deze module gaat over bonnen", "nl-BE": "Deze module gaat over bonnen",
				"de-DE": "Dieses Modul behandelt Gutscheine",
				"es-ES": "Este módulo trata sobre vales",
				"it-IT": "Questo modulo riguarda i buoni",
				"pt-PT": "Este módulo é sobre vales",
			},
			category: entity.ModuleCategoryBenefits,
		},
		{
			id: "019a7c8a-9e05-737b-93ce-fa3299d62ba7",
			name: map[string]string{
				"en-GB": "Survey",
				"fr-FR": "Sondage", "fr-BE": "Sondage",
				"nl-NL": "Enquête", "nl-BE": "Enquête",
				"de-DE": "Umfrage",
				"es-ES": "Encuesta",
				"it-IT": "Sondaggio",
				"pt-PT": "Sondagem",
			},
			description: map[string]string{
				"en-GB": "This module is about survey",
				"fr-FR": "Ce module concerne le sondage", "fr-BE": "Ce module concerne le sondage",
				"nl-NL": "Deze module gaat over enquêtes", "nl-BE": "Deze module gaat over enquêtes",
				"de-DE": "Dieses Modul behandelt Umfragen",
				"es-ES": "Este módulo trata sobre encuestas",
				"it-IT": "Questo modulo riguarda i sondaggi",
				"pt-PT": "Este módulo é sobre sondagens",
			},
			category: entity.ModuleCategoryEngagement,
			isCore:   true,
		},
	}
}

func main() {
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_modules.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo de módulos (UUIDs fijos)\n")
	out.WriteString("-- Generado por cmd/seed\n\n")
	out.WriteString("INSERT INTO modules (id, name, description, category, is_core, active) VALUES\n")

	mods := modules()
	for i, m := range mods {
		name, err := json.Marshal(m.name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Serializar name de %s: %v\n", m.id, err)
			os.Exit(1)
		}
		desc, err := json.Marshal(m.description)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Serializar description de %s: %v\n", m.id, err)
			os.Exit(1)
		}
		sep := ","
		if i == len(mods)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s'::jsonb, '%s'::jsonb, '%s', %t, true)%s\n",
			m.id, escapeSQL(string(name)), escapeSQL(string(desc)), m.category, m.isCore, sep)
	}

	out.WriteString("ON CONFLICT (id) DO UPDATE SET\n")
	out.WriteString("  name = EXCLUDED.name,\n")
	out.WriteString("  description = EXCLUDED.description,\n")
	out.WriteString("  category = EXCLUDED.category,\n")
	out.WriteString("  is_core = EXCLUDED.is_core;\n")

	fmt.Printf("Generado %s: %d módulos\n", outPath, len(mods))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
