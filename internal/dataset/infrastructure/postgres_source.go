package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bikestore/internal/dataset/domain"
	sharedinfra "bikestore/internal/shared/infrastructure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSource lit les tables depuis PostgreSQL
// Toutes les colonnes sont converties en texte côté base pour partager
// exactement le même chemin de typage que la source CSV.
type PostgresSource struct {
	sharedinfra.BaseRepository
	schema string
}

// NewPostgresSource crée une source PostgreSQL (schema "" = search_path)
func NewPostgresSource(db *sqlx.DB, schema string) *PostgresSource {
	return &PostgresSource{
		BaseRepository: sharedinfra.NewBaseRepository(db),
		schema:         schema,
	}
}

// Fetch lit toutes les colonnes connues d'une table
func (s *PostgresSource) Fetch(ctx context.Context, table string) (*domain.RawTable, error) {
	schema, ok := domain.Schemas[table]
	if !ok {
		return nil, &domain.LoadError{Table: table, Err: domain.ErrMissingTable}
	}

	present, err := s.existingColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(present) == 0 {
		return nil, &domain.LoadError{Table: table, Err: domain.ErrMissingTable}
	}

	// Seules les colonnes présentes sont demandées: une colonne obligatoire
	// absente est signalée par la validation du schéma, comme pour un CSV.
	header := make([]string, 0, len(schema.Columns()))
	selects := make([]string, 0, len(schema.Columns()))
	for _, col := range schema.Columns() {
		src := schema.SourceColumn(col)
		if _, ok := present[src]; !ok {
			if _, ok = present[col]; !ok {
				continue
			}
			src = col
		}
		header = append(header, src)
		selects = append(selects, fmt.Sprintf("COALESCE(%s::text, '')", pq.QuoteIdentifier(src)))
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selects, ", "), s.qualified(table))
	rows, err := s.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		values := make([]string, len(header))
		dest := make([]interface{}, len(header))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		records = append(records, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return domain.NewRawTable(table, header, records), nil
}

// existingColumns liste les colonnes réellement présentes dans la table
func (s *PostgresSource) existingColumns(ctx context.Context, table string) (map[string]struct{}, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1
		  AND table_schema = COALESCE(NULLIF($2::text, ''), current_schema())
	`
	var names []string
	if err := s.DB().SelectContext(ctx, &names, query, table, s.schema); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		present[strings.ToLower(n)] = struct{}{}
	}
	return present, nil
}

func (s *PostgresSource) qualified(table string) string {
	if s.schema == "" {
		return pq.QuoteIdentifier(table)
	}
	return pq.QuoteIdentifier(s.schema) + "." + pq.QuoteIdentifier(table)
}
