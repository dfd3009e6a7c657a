package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
)

// DraftLine is one raw posting line handed to the journal engine.
type DraftLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// JournalDraft is the journal engine's posting input: a header plus raw
// lines. IDs and audit fields are assigned by the engine.
type JournalDraft struct {
	ScopeID   string
	Date      time.Time
	Reference string
	Narration string
	Lines     []DraftLine
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID string         `json:"journalID"`
	ScopeID   string         `json:"scopeID"`
	Date      time.Time      `json:"date"`
	Reference string         `json:"reference"`
	Narration string         `json:"narration,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Lines     []LineResponse `json:"lines,omitempty"`
}

// ListJournalsParams holds pagination parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is a page of journals plus the cursor for the next page.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountCode: l.AccountCode,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	resp := JournalResponse{
		JournalID: j.JournalID,
		ScopeID:   j.ScopeID,
		Date:      j.Date,
		Reference: j.Reference,
		Narration: j.Narration,
		CreatedAt: j.CreatedAt,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(j.Lines))
		for i := range j.Lines {
			resp.Lines[i] = ToLineResponse(&j.Lines[i])
		}
	}
	return resp
}
