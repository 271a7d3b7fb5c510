package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"agencyhub_backend/internal/model"
)

// LeadCSVHeader is the fixed column set of a lead export.
var LeadCSVHeader = []string{
	"id", "name", "email", "phone", "company", "source", "status", "score", "created_at",
}

// LeadsToCSV renders leads in the order given, one quoted row each.
func LeadsToCSV(leads []model.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(LeadCSVHeader); err != nil {
		return nil, err
	}

	for _, lead := range leads {
		row := []string{
			strconv.FormatUint(uint64(lead.ID), 10),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Company,
			string(lead.Source),
			string(lead.Status),
			strconv.FormatFloat(lead.Score, 'f', -1, 64),
			lead.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
