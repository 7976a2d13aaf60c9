package recommendation

import (
	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/product"
)

// TemplateID is the localization key of a recommendation sentence.
type TemplateID string

const (
	TemplateAccessoryComparable TemplateID = "recommendation.accessory.comparable"
	TemplateAccessoryDefault    TemplateID = "recommendation.accessory.default"
	TemplateOneSizeCloseFit     TemplateID = "recommendation.one_size.close_fit"
	TemplateOneSizeRunsSmaller  TemplateID = "recommendation.one_size.runs_smaller"
	TemplateOneSizeRunsLarger   TemplateID = "recommendation.one_size.runs_larger"
	TemplateOneSizeWillFit      TemplateID = "recommendation.one_size.will_fit"
	TemplateOneSizeWillNotFit   TemplateID = "recommendation.one_size.will_not_fit"
	TemplateClosestSize         TemplateID = "recommendation.multi_size.closest"
	TemplateMultiSizeWillFit    TemplateID = "recommendation.multi_size.will_fit"
	TemplateMultiSizeWillNotFit TemplateID = "recommendation.multi_size.will_not_fit"
	TemplateNoData              TemplateID = "recommendation.no_data"
)

// CloseFitThreshold is the score above which a one-size product is reported as a close fit.
const CloseFitThreshold = 84.0

// Message is a resolved recommendation ready for rendering.
type Message struct {
	Template TemplateID `json:"template"`
	// Rule names the rule that produced the message.
	Rule string `json:"rule"`
	// SizeName is substituted into the {size} slot of the template.
	SizeName string `json:"size_name,omitempty"`
}

// Input bundles everything the rules look at.
type Input struct {
	Candidate   product.Product
	Match       *fit.Match
	BodyProfile *fit.BodyProfile
}

type rule struct {
	name    string
	applies func(in Input) bool
	build   func(in Input) Message
}

func fixed(t TemplateID) func(Input) Message {
	return func(Input) Message { return Message{Template: t} }
}

func accessory(in Input) bool      { return in.Candidate.IsAccessory() }
func oneSize(in Input) bool        { return in.Candidate.IsOneSize() }
func multiSize(in Input) bool      { return len(in.Candidate.Sizes) >= 2 }
func hasMatch(in Input) bool       { return in.Match.Valid() }
func hasBodyProfile(in Input) bool { return in.BodyProfile != nil }

func all(preds ...func(Input) bool) func(Input) bool {
	return func(in Input) bool {
		for _, p := range preds {
			if !p(in) {
				return false
			}
		}
		return true
	}
}

// rules are evaluated top to bottom, the first rule that applies wins.
var rules = []rule{
	{
		name:    "accessory_comparable",
		applies: all(accessory, hasMatch),
		build:   fixed(TemplateAccessoryComparable),
	},
	{
		name:    "accessory_default",
		applies: accessory,
		build:   fixed(TemplateAccessoryDefault),
	},
	{
		name: "one_size_close_fit",
		applies: all(oneSize, hasMatch, func(in Input) bool {
			return in.Match.BestFitScore > CloseFitThreshold
		}),
		build: fixed(TemplateOneSizeCloseFit),
	},
	{
		name: "one_size_runs_smaller",
		applies: all(oneSize, hasMatch, func(in Input) bool {
			return in.Match.IsStoreProductSmaller != nil && *in.Match.IsStoreProductSmaller
		}),
		build: fixed(TemplateOneSizeRunsSmaller),
	},
	{
		name:    "one_size_runs_larger",
		applies: all(oneSize, hasMatch),
		build:   fixed(TemplateOneSizeRunsLarger),
	},
	{
		name: "one_size_will_fit",
		applies: all(oneSize, hasBodyProfile, func(in Input) bool {
			return in.BodyProfile.WillFit
		}),
		build: fixed(TemplateOneSizeWillFit),
	},
	{
		name:    "one_size_will_not_fit",
		applies: all(oneSize, hasBodyProfile),
		build:   fixed(TemplateOneSizeWillNotFit),
	},
	{
		name:    "one_size_no_data",
		applies: oneSize,
		build:   fixed(TemplateNoData),
	},
	{
		name:    "multi_size_closest",
		applies: all(multiSize, hasMatch),
		build: func(in Input) Message {
			name := ""
			if in.Match.BestItemSize != nil {
				name = in.Match.BestItemSize.Name
			}
			return Message{Template: TemplateClosestSize, SizeName: name}
		},
	},
	{
		name: "multi_size_will_fit",
		applies: all(multiSize, hasBodyProfile, func(in Input) bool {
			return in.BodyProfile.WillFit
		}),
		build: func(in Input) Message {
			return Message{Template: TemplateMultiSizeWillFit, SizeName: in.BodyProfile.RecommendedSizeName}
		},
	},
	{
		name:    "multi_size_will_not_fit",
		applies: all(multiSize, hasBodyProfile),
		build: func(in Input) Message {
			return Message{Template: TemplateMultiSizeWillNotFit, SizeName: in.BodyProfile.RecommendedSizeName}
		},
	},
}

const noDataRule = "no_data"

// Resolve picks the recommendation for the candidate.
// match and body may be nil; a product without sizes always resolves to the no-data template.
func Resolve(candidate product.Product, match *fit.Match, body *fit.BodyProfile) Message {
	in := Input{Candidate: candidate, Match: match, BodyProfile: body}
	for _, r := range rules {
		if !r.applies(in) {
			continue
		}
		msg := r.build(in)
		msg.Rule = r.name
		return msg
	}
	return Message{Template: TemplateNoData, Rule: noDataRule}
}

// Rules returns the rule names in evaluation order.
func Rules() []string {
	names := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		names = append(names, r.name)
	}
	return append(names, noDataRule)
}
