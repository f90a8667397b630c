package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultRender(t *testing.T) {
	t.Run("clean result", func(t *testing.T) {
		v := newValidator(t)
		result := v.Run(cleanDataset())

		var b strings.Builder
		result.Render(&b)
		out := b.String()

		assert.Contains(t, out, "DATA QUALITY VALIDATION REPORT")
		assert.Contains(t, out, "[PASS] Required Fields")
		assert.Contains(t, out, "[PASS] Portfolio Sum")
		assert.Contains(t, out, "All validation checks passed.")
		assert.Contains(t, out, "Status: PASSED")
		assert.NotContains(t, out, "[WARN]")
		assert.NotContains(t, out, "[FAIL]")
	})

	t.Run("result with findings", func(t *testing.T) {
		v := newValidator(t)
		ds := cleanDataset()
		ds.Records[0].ISIN = "BOGUS"

		var b strings.Builder
		v.Run(ds).Render(&b)
		out := b.String()

		assert.Contains(t, out, "[WARN] ISIN Format")
		assert.Contains(t, out, "BOGUS")
		assert.Contains(t, out, "Found 1 issue(s):")
		assert.Contains(t, out, "Status: NEEDS_REVIEW")
	})

	t.Run("missing value table lists columns with nulls", func(t *testing.T) {
		v := newValidator(t)
		ds := cleanDataset()
		ds.Records[0].Quantity = nil

		var b strings.Builder
		v.Run(ds).Render(&b)
		out := b.String()

		assert.Contains(t, out, "Missing Value Report:")
		assert.Contains(t, out, "quantity")
		assert.NotContains(t, out, "scheme_name ", "fully populated columns are omitted from the table")
	})
}

func TestProfileRender(t *testing.T) {
	p := BuildProfile(profileDataset())

	var b strings.Builder
	p.Render(&b)
	out := b.String()

	assert.Contains(t, out, "DATA PROFILE")
	assert.Contains(t, out, "Total Holdings:  4")
	assert.Contains(t, out, "Unique Schemes:  2")
	assert.Contains(t, out, "2025-12-31")
	assert.Contains(t, out, "Equity")
	assert.Contains(t, out, "Market Value Statistics")
	assert.Contains(t, out, "Top 4 Holdings by Value:")
	assert.Contains(t, out, "Reliance Industries Limited")
}
