package util

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DefaultOrdering sorts filings by posting date, newest first.
const DefaultOrdering = "-filing_dt_posted"

// FilingFilters mirrors the filter parameters of the LDA filings endpoint.
// Values are kept as strings and forwarded verbatim; validation only rejects
// obviously malformed numbers and booleans before they reach the upstream.
type FilingFilters struct {
	AffiliatedOrganizationCountry         string `query:"affiliated_organization_country" mapstructure:"affiliated_organization_country,omitempty"`
	AffiliatedOrganizationListedIndicator string `query:"affiliated_organization_listed_indicator" mapstructure:"affiliated_organization_listed_indicator,omitempty" validate:"omitempty,oneof=true false True False"`
	AffiliatedOrganizationName            string `query:"affiliated_organization_name" mapstructure:"affiliated_organization_name,omitempty"`

	ClientCountry    string `query:"client_country" mapstructure:"client_country,omitempty"`
	ClientID         string `query:"client_id" mapstructure:"client_id,omitempty" validate:"omitempty,numeric"`
	ClientName       string `query:"client_name" mapstructure:"client_name,omitempty"`
	ClientPPBCountry string `query:"client_ppb_country" mapstructure:"client_ppb_country,omitempty"`
	ClientPPBState   string `query:"client_ppb_state" mapstructure:"client_ppb_state,omitempty"`
	ClientState      string `query:"client_state" mapstructure:"client_state,omitempty"`

	FilingAmountReportedMax      string `query:"filing_amount_reported_max" mapstructure:"filing_amount_reported_max,omitempty" validate:"omitempty,numeric"`
	FilingAmountReportedMin      string `query:"filing_amount_reported_min" mapstructure:"filing_amount_reported_min,omitempty" validate:"omitempty,numeric"`
	FilingDtPostedAfter          string `query:"filing_dt_posted_after" mapstructure:"filing_dt_posted_after,omitempty"`
	FilingDtPostedBefore         string `query:"filing_dt_posted_before" mapstructure:"filing_dt_posted_before,omitempty"`
	FilingPeriod                 string `query:"filing_period" mapstructure:"filing_period,omitempty"`
	FilingSpecificLobbyingIssues string `query:"filing_specific_lobbying_issues" mapstructure:"filing_specific_lobbying_issues,omitempty"`
	FilingType                   string `query:"filing_type" mapstructure:"filing_type,omitempty"`
	FilingUUID                   string `query:"filing_uuid" mapstructure:"filing_uuid,omitempty"`
	FilingYear                   string `query:"filing_year" mapstructure:"filing_year,omitempty" validate:"omitempty,numeric"`

	ForeignEntityCountry                string `query:"foreign_entity_country" mapstructure:"foreign_entity_country,omitempty"`
	ForeignEntityListedIndicator        string `query:"foreign_entity_listed_indicator" mapstructure:"foreign_entity_listed_indicator,omitempty" validate:"omitempty,oneof=true false True False"`
	ForeignEntityName                   string `query:"foreign_entity_name" mapstructure:"foreign_entity_name,omitempty"`
	ForeignEntityOwnershipPercentageMax string `query:"foreign_entity_ownership_percentage_max" mapstructure:"foreign_entity_ownership_percentage_max,omitempty"`
	ForeignEntityOwnershipPercentageMin string `query:"foreign_entity_ownership_percentage_min" mapstructure:"foreign_entity_ownership_percentage_min,omitempty"`
	ForeignEntityPPBCountry             string `query:"foreign_entity_ppb_country" mapstructure:"foreign_entity_ppb_country,omitempty"`

	LobbyistConvictionDateRangeAfter      string `query:"lobbyist_conviction_date_range_after" mapstructure:"lobbyist_conviction_date_range_after,omitempty"`
	LobbyistConvictionDateRangeBefore     string `query:"lobbyist_conviction_date_range_before" mapstructure:"lobbyist_conviction_date_range_before,omitempty"`
	LobbyistConvictionDisclosure          string `query:"lobbyist_conviction_disclosure" mapstructure:"lobbyist_conviction_disclosure,omitempty"`
	LobbyistConvictionDisclosureIndicator string `query:"lobbyist_conviction_disclosure_indicator" mapstructure:"lobbyist_conviction_disclosure_indicator,omitempty" validate:"omitempty,oneof=true false True False"`
	LobbyistCoveredPosition               string `query:"lobbyist_covered_position" mapstructure:"lobbyist_covered_position,omitempty"`
	LobbyistCoveredPositionIndicator      string `query:"lobbyist_covered_position_indicator" mapstructure:"lobbyist_covered_position_indicator,omitempty" validate:"omitempty,oneof=true false True False"`
	LobbyistID                            string `query:"lobbyist_id" mapstructure:"lobbyist_id,omitempty" validate:"omitempty,numeric"`
	LobbyistName                          string `query:"lobbyist_name" mapstructure:"lobbyist_name,omitempty"`

	Ordering string `query:"ordering" mapstructure:"ordering,omitempty"`

	RegistrantCountry    string `query:"registrant_country" mapstructure:"registrant_country,omitempty"`
	RegistrantID         string `query:"registrant_id" mapstructure:"registrant_id,omitempty" validate:"omitempty,numeric"`
	RegistrantName       string `query:"registrant_name" mapstructure:"registrant_name,omitempty"`
	RegistrantPPBCountry string `query:"registrant_ppb_country" mapstructure:"registrant_ppb_country,omitempty"`
}

// ToQueryParams returns the set filters keyed by their upstream parameter
// name. Unset and whitespace-only values are omitted. ordering falls back to
// DefaultOrdering.
func (f FilingFilters) ToQueryParams() (map[string]string, error) {
	raw := make(map[string]any)
	if err := mapstructure.Decode(f, &raw); err != nil {
		return nil, fmt.Errorf("failed to encode filters: %w", err)
	}

	params := make(map[string]string, len(raw)+1)
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			params[key] = s
		}
	}
	if _, ok := params["ordering"]; !ok {
		params["ordering"] = DefaultOrdering
	}

	return params, nil
}
