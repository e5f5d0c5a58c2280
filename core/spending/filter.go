package spending

import "github.com/sutt/usa-spending/core/utils"

// Filter expresses one search query: type codes, amount bounds, a date
// interval, and (for the identifier-based stage) an explicit award id list.
// The same shape is consumed by both resource kinds.
type Filter struct {
	TypeCodes []string
	MinAmount float64
	MaxAmount *float64
	StartDate string
	EndDate   string
	AwardIDs  []string
}

type searchRequest struct {
	Filters filterPayload `json:"filters"`
	Fields  []string      `json:"fields"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	Sort    string        `json:"sort"`
	Order   string        `json:"order"`
}

type filterPayload struct {
	AwardTypeCodes []string      `json:"award_type_codes,omitempty"`
	AwardAmounts   []amountBound `json:"award_amounts,omitempty"`
	TimePeriod     []timePeriod  `json:"time_period,omitempty"`
	AwardIDs       []string      `json:"award_ids,omitempty"`
}

type amountBound struct {
	LowerBound *float64 `json:"lower_bound,omitempty"`
	UpperBound *float64 `json:"upper_bound,omitempty"`
}

type timePeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type searchResponse struct {
	Limit        int          `json:"limit"`
	PageMetadata pageMetadata `json:"page_metadata"`
	Results      []RawRecord  `json:"results"`
}

type pageMetadata struct {
	Page        int  `json:"page"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

func (f Filter) payload() filterPayload {
	p := filterPayload{
		AwardTypeCodes: f.TypeCodes,
		AwardIDs:       f.AwardIDs,
	}
	if f.StartDate != "" || f.EndDate != "" {
		p.TimePeriod = []timePeriod{{StartDate: f.StartDate, EndDate: f.EndDate}}
	}
	if f.MinAmount > 0 || f.MaxAmount != nil {
		bound := amountBound{UpperBound: f.MaxAmount}
		if f.MinAmount > 0 {
			lower := f.MinAmount
			bound.LowerBound = &lower
		}
		p.AwardAmounts = []amountBound{bound}
	}
	return p
}

// RawRecord is one result dictionary exactly as the API returned it, keyed
// by the human-readable field names from the request's field list. Only the
// normalizers read these keys; everything downstream works on normalized
// records.
type RawRecord map[string]any

// String returns the value under key as a string, "" when absent or null.
func (r RawRecord) String(key string) string {
	return utils.ToString(r[key])
}

// Float returns the value under key as a float64, 0 when absent or null.
func (r RawRecord) Float(key string) float64 {
	return utils.ToFloat(r[key])
}

// Strings returns the value under key as a string slice. The API encodes
// tag sets as JSON arrays of strings; anything else yields an empty slice.
func (r RawRecord) Strings(key string) []string {
	items, ok := r[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := utils.ToString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
