package common

import (
	"encoding/json"
	"strings"
)

// Filing is a single lobbying disclosure record as returned by the Senate LDA
// filings endpoint. Only the fields the graph needs are modeled; every nested
// object is optional and may be absent or null.
type Filing struct {
	UUID     string `json:"filing_uuid"`
	Type     string `json:"filing_type"`
	Period   string `json:"filing_period"`
	Year     int    `json:"filing_year"`
	PostedAt string `json:"filing_dt_posted"`

	Client     *Party           `json:"client"`
	Registrant *Party           `json:"registrant"`
	Lobbyists  []*LobbyistEntry `json:"lobbyists"`

	// Amounts are kept raw because the upstream mixes numbers, strings and
	// null for the same field.
	AmountReported json.RawMessage `json:"filing_amount_reported,omitempty"`
	Income         json.RawMessage `json:"income,omitempty"`
	Expenses       json.RawMessage `json:"expenses,omitempty"`
}

// Party is a client or registrant reference on a filing.
type Party struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// LobbyistEntry is one element of a filing's lobbyist list. The flat form
// carries Name; the LDA-native form nests the person under Lobbyist.
type LobbyistEntry struct {
	Name     string        `json:"name"`
	Lobbyist *LobbyistName `json:"lobbyist,omitempty"`
}

// LobbyistName is the structured name of a lobbyist.
type LobbyistName struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
}

// ClientName returns the trimmed client name or "".
func (f *Filing) ClientName() string {
	if f == nil || f.Client == nil {
		return ""
	}
	return strings.TrimSpace(f.Client.Name)
}

// RegistrantName returns the trimmed registrant name or "".
func (f *Filing) RegistrantName() string {
	if f == nil || f.Registrant == nil {
		return ""
	}
	return strings.TrimSpace(f.Registrant.Name)
}

// RawAmount returns the first reported amount field that is present and not
// null: filing_amount_reported, then income, then expenses.
func (f *Filing) RawAmount() json.RawMessage {
	if f == nil {
		return nil
	}
	for _, raw := range []json.RawMessage{f.AmountReported, f.Income, f.Expenses} {
		if isPresent(raw) {
			return raw
		}
	}
	return nil
}

// DisplayName returns the trimmed lobbyist name, falling back to the
// space-joined structured name parts. Returns "" when nothing usable is set.
func (l *LobbyistEntry) DisplayName() string {
	if l == nil {
		return ""
	}
	if name := strings.TrimSpace(l.Name); name != "" {
		return name
	}
	if l.Lobbyist == nil {
		return ""
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{l.Lobbyist.FirstName, l.Lobbyist.MiddleName, l.Lobbyist.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func isPresent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}
