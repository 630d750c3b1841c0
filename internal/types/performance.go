package types

// TemplatePerformanceRecord tracks send/reply outcomes for one
// (cluster, template) pair. SuccessRate is all-time replied/sent with no
// decay or recency weighting.
type TemplatePerformanceRecord struct {
	Cluster     string  `json:"cluster"`
	Template    string  `json:"template"`
	Sent        int     `json:"sent"`
	Replied     int     `json:"replied"`
	SuccessRate float64 `json:"success_rate"`
}

// Recompute refreshes the derived success rate from the counters.
func (r *TemplatePerformanceRecord) Recompute() {
	if r.Sent == 0 {
		r.SuccessRate = 0
		return
	}
	r.SuccessRate = float64(r.Replied) / float64(r.Sent)
}
