// Package cluster defines the cluster model produced by the upstream
// agglomeration step and consumed by the reports.
package cluster

import (
	"fmt"
	"strings"

	"github.com/seedtk/clustereport/internal/tabio"
)

// Cluster is one group of related identifiers, with the height and score
// assigned by the clustering algorithm. Clusters are never modified after
// loading.
type Cluster struct {
	ID      string
	Height  float64
	Score   float64
	Members []string
}

// Size returns the number of members in the cluster.
func (c *Cluster) Size() int {
	return len(c.Members)
}

// Group is the full set of clusters for one report run.
type Group struct {
	Clusters []*Cluster
}

// Members returns the flat list of all member identifiers across every
// cluster, in cluster order. This is the id list used for bulk pre-fetch.
func (g *Group) Members() []string {
	var result []string
	for _, cl := range g.Clusters {
		result = append(result, cl.Members...)
	}
	return result
}

// Load reads a cluster group from a tab-delimited file with columns
// cluster_id, height, score, members. Members are comma-separated.
func Load(path string) (*Group, error) {
	r, err := tabio.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("open cluster file: %w", err)
	}
	defer r.Close()
	group := &Group{}
	for {
		line, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read cluster file: %w", err)
		}
		if line == nil {
			break
		}
		height, err := line.GetFloat(1)
		if err != nil {
			return nil, fmt.Errorf("cluster %s: %w", line.Get(0), err)
		}
		score, err := line.GetFloat(2)
		if err != nil {
			return nil, fmt.Errorf("cluster %s: %w", line.Get(0), err)
		}
		cl := &Cluster{
			ID:     line.Get(0),
			Height: height,
			Score:  score,
		}
		if members := line.Get(3); members != "" {
			cl.Members = strings.Split(members, ",")
		}
		group.Clusters = append(group.Clusters, cl)
	}
	return group, nil
}

// Save writes a cluster group in the format read by Load.
func Save(path string, group *Group) error {
	w, err := tabio.NewWriter(path, "cluster_id", "height", "score", "members")
	if err != nil {
		return fmt.Errorf("create cluster file: %w", err)
	}
	for _, cl := range group.Clusters {
		w.WriteRecord(cl.ID, fmt.Sprintf("%g", cl.Height), fmt.Sprintf("%g", cl.Score),
			strings.Join(cl.Members, ","))
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write cluster file: %w", err)
	}
	return nil
}
