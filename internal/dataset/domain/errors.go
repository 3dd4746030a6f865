package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTable une table source est absente
	ErrMissingTable = errors.New("missing source table")
	// ErrMissingColumn une colonne obligatoire est absente de l'en-tête
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidValue une cellule ne respecte pas le type ou l'invariant attendu
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidDate une date n'a pas pu être lue
	ErrInvalidDate = errors.New("invalid date")
	// ErrDuplicateKey une clé primaire apparaît plusieurs fois
	ErrDuplicateKey = errors.New("duplicate key")
)

// LoadError erreur fatale de chargement: le pipeline ne peut pas continuer
// Row est le numéro de ligne de données (1 = première ligne après l'en-tête),
// 0 quand l'erreur porte sur la table entière.
type LoadError struct {
	Table  string
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("load %s: row %d, column %s: %v", e.Table, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %s: %v", e.Table, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("load %s: row %d: %v", e.Table, e.Row, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Table, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
