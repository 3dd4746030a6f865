package domain

import (
	"strings"
)

// RawTable table source non typée (en-tête + lignes de texte)
// C'est le contrat commun de toutes les sources (CSV, PostgreSQL).
type RawTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// NewRawTable crée une table brute
func NewRawTable(name string, header []string, rows [][]string) *RawTable {
	return &RawTable{
		Name:   name,
		Header: header,
		Rows:   rows,
	}
}

// normalizeColumn met un nom de colonne sous forme canonique
func normalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

// columnIndex retourne la position de chaque colonne canonique après renommage
func (t *RawTable) columnIndex(renames map[string]string) map[string]int {
	index := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		name := normalizeColumn(h)
		if renamed, ok := renames[name]; ok {
			name = renamed
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}
