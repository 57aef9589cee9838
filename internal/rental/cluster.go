package rental

import "fmt"

// ClusterMean is the mean Total of the records sharing a cluster label.
type ClusterMean struct {
	Label     string  `json:"label"`
	Records   int     `json:"records"`
	MeanTotal float64 `json:"meanTotal"`
}

// ClusterResult lists every cluster present and the one with the highest
// mean Total.
type ClusterResult struct {
	Groups []ClusterMean `json:"groups"`
	Best   ClusterMean   `json:"best"`
}

// ByCluster groups ds by Cluster label. Groups are listed in the order their
// label is first encountered, and a tie for the highest mean resolves to the
// label encountered first. An empty dataset returns ErrEmptyInput.
func ByCluster(ds *Dataset) (ClusterResult, error) {
	if ds.Len() == 0 {
		return ClusterResult{}, fmt.Errorf("by cluster: %w", ErrEmptyInput)
	}

	index := make(map[string]int)
	var (
		labels []string
		sums   []countSums
	)
	for _, r := range ds.records {
		i, ok := index[r.Cluster]
		if !ok {
			i = len(labels)
			index[r.Cluster] = i
			labels = append(labels, r.Cluster)
			sums = append(sums, countSums{})
		}
		sums[i].add(r)
	}

	res := ClusterResult{Groups: make([]ClusterMean, 0, len(labels))}
	for i, label := range labels {
		g := ClusterMean{
			Label:     label,
			Records:   sums[i].n,
			MeanTotal: float64(sums[i].total) / float64(sums[i].n),
		}
		if i == 0 || g.MeanTotal > res.Best.MeanTotal {
			res.Best = g
		}
		res.Groups = append(res.Groups, g)
	}
	return res, nil
}
