package genome

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// LoadDuckDB reads a genome from a DuckDB database. The database must
// contain a genome table (id, name), a features table (id, gene, b_number,
// function), and a feature_subsystems table (fid, subsystem).
func LoadDuckDB(path string) (*Genome, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open genome database: %w", err)
	}
	defer db.Close()

	var id, name string
	if err := db.QueryRow(`SELECT id, name FROM genome LIMIT 1`).Scan(&id, &name); err != nil {
		return nil, fmt.Errorf("query genome table: %w", err)
	}
	g := New(id, name)

	rows, err := db.Query(`SELECT id, gene, b_number, function FROM features`)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		f := &Feature{}
		if err := rows.Scan(&f.ID, &f.Gene, &f.BNumber, &f.Function); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		g.AddFeature(f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read features: %w", err)
	}

	subRows, err := db.Query(`SELECT fid, subsystem FROM feature_subsystems ORDER BY fid, subsystem`)
	if err != nil {
		return nil, fmt.Errorf("query feature subsystems: %w", err)
	}
	defer subRows.Close()
	for subRows.Next() {
		var fid, subsystem string
		if err := subRows.Scan(&fid, &subsystem); err != nil {
			return nil, fmt.Errorf("scan feature subsystem: %w", err)
		}
		if f := g.Feature(fid); f != nil {
			f.Subsystems = append(f.Subsystems, subsystem)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("read feature subsystems: %w", err)
	}
	return g, nil
}
