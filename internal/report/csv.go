package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/model"
)

// ReadLeadsCSV imports leads from a CSV file with a header row. Column
// names are matched case-insensitively; unknown columns are ignored.
// Numeric and timestamp fields that fail to parse are dropped to nil so
// one bad cell does not reject the row.
func ReadLeadsCSV(path string) ([]model.Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "report: open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "report: read csv header")
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var leads []model.Lead
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "report: read csv line %d", line)
		}

		field := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		lead := model.Lead{
			Email:          field("email"),
			Phone:          field("phone"),
			FirstName:      field("first_name"),
			LastName:       field("last_name"),
			Company:        field("company"),
			Role:           field("role"),
			Niche:          field("niche"),
			Source:         field("source"),
			URL:            field("url"),
			Location:       field("location"),
			Website:        field("website"),
			SocialMediaURL: field("social_media_url"),
			Description:    field("description"),
		}

		if v := field("rating"); v != "" {
			if rating, err := strconv.ParseFloat(v, 64); err == nil {
				lead.Rating = &rating
			} else {
				zap.L().Debug("unparseable rating dropped", zap.Int("line", line), zap.String("value", v))
			}
		}
		if v := field("reviews"); v != "" {
			if reviews, err := strconv.Atoi(v); err == nil {
				lead.Reviews = &reviews
			}
		}
		if v := field("verified"); v != "" {
			lead.Verified, _ = strconv.ParseBool(v)
		}
		if v := field("created_at"); v != "" {
			if created, err := parseTimestamp(v); err == nil {
				lead.CreatedAt = &created
			} else {
				zap.L().Debug("unparseable created_at dropped", zap.Int("line", line), zap.String("value", v))
			}
		}

		leads = append(leads, lead)
	}
	return leads, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, eris.Errorf("unrecognized timestamp %q", s)
}
