package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/shelterconnect/shelter-matcher/pkg/core/coerce"
	"github.com/shelterconnect/shelter-matcher/pkg/core/matcher"
	"github.com/shelterconnect/shelter-matcher/pkg/core/model"
	"github.com/shelterconnect/shelter-matcher/pkg/db"
)

// ReferralExplanation is every shelter's verdict for one referral
type ReferralExplanation struct {
	Referral model.Referral
	Verdicts []matcher.Verdict
}

// MatchCount returns how many shelters matched
func (e ReferralExplanation) MatchCount() int {
	n := 0
	for _, v := range e.Verdicts {
		if v.Matched {
			n++
		}
	}
	return n
}

// ColumnSample lists the first non-blank values of a raw source column
type ColumnSample struct {
	Name   string
	Values []string
}

// ExplainMatches evaluates referrals against every shelter and reports each verdict.
// With a referralID only that referral is explained; an unknown id is an error.
func ExplainMatches(ctx context.Context, source db.RecordSource, logger *zap.Logger, referralID string) ([]ReferralExplanation, *Inputs, error) {
	inputs, err := LoadInputs(ctx, source, logger)
	if err != nil {
		return nil, nil, err
	}

	refs := inputs.Referrals
	if referralID != "" {
		idx := slices.IndexFunc(refs, func(r model.Referral) bool { return r.RowID == referralID })
		if idx < 0 {
			return nil, nil, fmt.Errorf("referral %q not found", referralID)
		}
		refs = refs[idx : idx+1]
	}

	explanations := make([]ReferralExplanation, 0, len(refs))
	for i := range refs {
		explanations = append(explanations, ReferralExplanation{
			Referral: refs[i],
			Verdicts: matcher.ExplainReferral(&refs[i], inputs.Shelters, inputs.Beds),
		})
	}

	logger.Debug("Explained referrals", zap.Int("referrals", len(explanations)), zap.Int("shelters", len(inputs.Shelters)))

	return explanations, inputs, nil
}

// SampleColumns finds raw columns whose name contains substr (case-insensitive)
// and collects up to limit non-blank values from each, in row order.
// Columns are returned sorted by name.
func SampleColumns(records []model.Record, substr string, limit int) []ColumnSample {
	substr = strings.ToLower(substr)

	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for name := range rec {
			if !seen[name] && strings.Contains(strings.ToLower(name), substr) {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)

	samples := make([]ColumnSample, 0, len(names))
	for _, name := range names {
		sample := ColumnSample{Name: name, Values: []string{}}
		for _, rec := range records {
			if len(sample.Values) >= limit {
				break
			}
			if v := strings.TrimSpace(coerce.ToText(rec[name])); v != "" {
				sample.Values = append(sample.Values, v)
			}
		}
		samples = append(samples, sample)
	}

	return samples
}
