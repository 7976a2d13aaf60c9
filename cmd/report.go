package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/fitcheck/internal/fit"
)

// ReportRow describes how a single wardrobe item compares with the checked product.
type ReportRow struct {
	ItemID        string  `json:"item_id"`
	ItemName      string  `json:"item_name,omitempty"`
	UserSize      string  `json:"user_size"`
	CandidateSize string  `json:"candidate_size"`
	Score         float64 `json:"score"`
	RunsSmaller   *bool   `json:"runs_smaller,omitempty"`
	Best          bool    `json:"best,omitempty"`
}

// Report is the wardrobe report of a single check.
type Report struct {
	ProductID   string           `json:"product_id"`
	Rule        string           `json:"rule"`
	Template    string           `json:"template"`
	SizeName    string           `json:"size_name,omitempty"`
	BodyProfile *fit.BodyProfile `json:"body_profile,omitempty"`
	Rows        []ReportRow      `json:"rows"`
}

func (o *outcome) Report() *Report {
	r := &Report{
		ProductID:   o.Product.ExternalID,
		Rule:        o.Message.Rule,
		Template:    string(o.Message.Template),
		SizeName:    o.Message.SizeName,
		BodyProfile: o.BodyProfile,
		Rows:        make([]ReportRow, 0, len(o.Scores)),
	}

	for _, s := range o.Scores {
		r.Rows = append(r.Rows, ReportRow{
			ItemID:        s.Item.ID,
			ItemName:      s.Item.Name,
			UserSize:      s.UserSize.Name,
			CandidateSize: s.CandidateSize.Name,
			Score:         fit.Percent(s.Result.Score),
			RunsSmaller:   s.Result.IsSmaller,
			Best:          o.Match.Valid() && o.Match.BestUserItem.ID == s.Item.ID,
		})
	}

	return r
}

func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "fitcheck_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return file.Name(), nil
}
