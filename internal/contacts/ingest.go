package contacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/akm592/coldreach/internal/types"
)

// CanonicalColumns is the fixed contact-table schema. Loads reshape any
// input to exactly these columns: unrecognized columns are dropped and
// missing ones are added empty, so schema drift never fails a load.
var CanonicalColumns = []string{
	"Company",
	"Recipient Name",
	"Recipient Email",
	"Title",
	"Referral Name",
	"Referral Company",
	"Resume Type",
	"Template Used",
	"Email Status",
	"Sent Date",
	"Follow-up 1 Date",
	"Follow-up 2 Date",
	"Follow-up 3 Date",
	"Response Status",
	"Company Info",
	"Pending Subject",
	"Pending Body",
	"Failure Reason",
}

// headerAliases maps common recruiter-CSV headers to canonical ones.
var headerAliases = map[string]string{
	"Name":  "Recipient Name",
	"Email": "Recipient Email",
}

// Row is one contact record in tabular form, keyed by canonical column.
type Row map[string]string

// ParseCSV reads contacts from a CSV export, reshapes each record to the
// canonical schema, normalizes recipient emails, and deduplicates by
// normalized email with last-write-wins. Rows without a valid email are
// kept (they are skipped with a logged reason at processing time, not
// rejected at ingestion).
func ParseCSV(r io.Reader) ([]types.Contact, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if alias, ok := headerAliases[h]; ok {
			h = alias
		}
		header[i] = h
	}

	// Reshape row by row, then dedupe. Last write wins but the row keeps
	// its first position, so output order is stable across reruns.
	order := make([]string, 0, len(records)-1)
	byEmail := make(map[string]Row)
	var unkeyed []Row

	for _, record := range records[1:] {
		row := make(Row, len(CanonicalColumns))
		for _, col := range CanonicalColumns {
			row[col] = ""
		}
		for i, val := range record {
			if i >= len(header) {
				break
			}
			col := header[i]
			if _, ok := row[col]; ok {
				row[col] = strings.TrimSpace(val)
			}
			// Unrecognized columns fall through and are dropped.
		}

		email := NormalizeEmail(row["Recipient Email"])
		if email == "" {
			unkeyed = append(unkeyed, row)
			continue
		}
		row["Recipient Email"] = email
		if _, seen := byEmail[email]; !seen {
			order = append(order, email)
		}
		byEmail[email] = row
	}

	out := make([]types.Contact, 0, len(order)+len(unkeyed))
	for _, email := range order {
		out = append(out, ContactFromRow(byEmail[email]))
	}
	for _, row := range unkeyed {
		out = append(out, ContactFromRow(row))
	}
	return out, nil
}

// ContactFromRow converts a canonical row to a Contact. An empty status
// defaults to Pending so freshly ingested contacts enter the outreach pass.
func ContactFromRow(row Row) types.Contact {
	c := types.Contact{
		ID:              uuid.New(),
		Company:         row["Company"],
		RecipientName:   row["Recipient Name"],
		RecipientEmail:  row["Recipient Email"],
		Title:           row["Title"],
		ReferralName:    row["Referral Name"],
		ReferralCompany: row["Referral Company"],
		ResumeType:      row["Resume Type"],
		TemplateUsed:    row["Template Used"],
		Status:          types.ContactStatus(row["Email Status"]),
		SentDate:        row["Sent Date"],
		Response:        types.ResponseStatus(row["Response Status"]),
		ResearchSnapshot: row["Company Info"],
		PendingSubject:  row["Pending Subject"],
		PendingBody:     row["Pending Body"],
		FailureReason:   row["Failure Reason"],
	}
	c.FollowUpDates[0] = row["Follow-up 1 Date"]
	c.FollowUpDates[1] = row["Follow-up 2 Date"]
	c.FollowUpDates[2] = row["Follow-up 3 Date"]

	if c.Status == "" {
		c.Status = types.StatusPending
	}
	return c
}

// RowFromContact converts a Contact back to its tabular form, used by the
// spreadsheet sync and CSV export.
func RowFromContact(c *types.Contact) Row {
	return Row{
		"Company":          c.Company,
		"Recipient Name":   c.RecipientName,
		"Recipient Email":  c.RecipientEmail,
		"Title":            c.Title,
		"Referral Name":    c.ReferralName,
		"Referral Company": c.ReferralCompany,
		"Resume Type":      c.ResumeType,
		"Template Used":    c.TemplateUsed,
		"Email Status":     string(c.Status),
		"Sent Date":        c.SentDate,
		"Follow-up 1 Date": c.FollowUpDates[0],
		"Follow-up 2 Date": c.FollowUpDates[1],
		"Follow-up 3 Date": c.FollowUpDates[2],
		"Response Status":  string(c.Response),
		"Company Info":     c.ResearchSnapshot,
		"Pending Subject":  c.PendingSubject,
		"Pending Body":     c.PendingBody,
		"Failure Reason":   c.FailureReason,
	}
}

// SheetValues renders contacts as a header row plus one row per contact in
// canonical column order.
func SheetValues(list []types.Contact) [][]string {
	values := make([][]string, 0, len(list)+1)
	values = append(values, CanonicalColumns)
	for i := range list {
		row := RowFromContact(&list[i])
		cells := make([]string, len(CanonicalColumns))
		for j, col := range CanonicalColumns {
			cells[j] = row[col]
		}
		values = append(values, cells)
	}
	return values
}
