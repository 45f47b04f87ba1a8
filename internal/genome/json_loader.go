package genome

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonGenome mirrors the genome exchange file layout.
type jsonGenome struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Features []jsonFeature `json:"features"`
}

type jsonFeature struct {
	ID         string   `json:"id"`
	Gene       string   `json:"gene"`
	BNumber    string   `json:"b_number"`
	Function   string   `json:"function"`
	Subsystems []string `json:"subsystems"`
}

// LoadJSON reads a genome from a JSON exchange file.
func LoadJSON(path string) (*Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genome file: %w", err)
	}
	defer f.Close()

	var raw jsonGenome
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode genome file %s: %w", path, err)
	}

	g := New(raw.ID, raw.Name)
	for _, jf := range raw.Features {
		if jf.ID == "" {
			continue
		}
		g.AddFeature(&Feature{
			ID:         jf.ID,
			Gene:       jf.Gene,
			BNumber:    jf.BNumber,
			Function:   jf.Function,
			Subsystems: jf.Subsystems,
		})
	}
	return g, nil
}
