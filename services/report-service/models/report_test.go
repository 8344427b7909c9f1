package models

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketNumber(t *testing.T) {
	for i := 0; i < 1000; i++ {
		ticket := NewTicketNumber()
		require.True(t, ValidTicketNumber(ticket), "generated ticket %q has wrong shape", ticket)

		n, err := strconv.Atoi(strings.TrimPrefix(ticket, "CB-"))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestValidTicketNumber(t *testing.T) {
	assert.True(t, ValidTicketNumber("CB-123456"))
	assert.True(t, ValidTicketNumber("CB-100000"))
	assert.True(t, ValidTicketNumber("CB-999999"))

	assert.False(t, ValidTicketNumber("cb-123456"))
	assert.False(t, ValidTicketNumber("CB-12345"))
	assert.False(t, ValidTicketNumber("CB-1234567"))
	assert.False(t, ValidTicketNumber("CB123456"))
	assert.False(t, ValidTicketNumber(" CB-123456"))
	assert.False(t, ValidTicketNumber(""))
}

func TestNormalizeTicket(t *testing.T) {
	assert.Equal(t, "CB-123456", NormalizeTicket(" cb-123456 "))
	assert.Equal(t, "CB-123456", NormalizeTicket("CB-123456"))
	assert.Equal(t, "", NormalizeTicket("   "))
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Investigating", "Resolved", "Rejected"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, ReportStatus(s), st)
	}

	_, err := ParseStatus("pending")
	assert.Error(t, err)
	_, err = ParseStatus("Closed")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority("High")
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("high")
	assert.False(t, ok)
	_, ok = ParsePriority("Urgent")
	assert.False(t, ok)
}

func TestMaskAnonymous(t *testing.T) {
	r := Report{
		IsAnonymous:   true,
		ReporterName:  "Rahim Uddin",
		ReporterEmail: "rahim@example.com",
		ReporterPhone: "01712345678",
	}

	masked := r.MaskAnonymous()
	assert.Equal(t, "পরিচয় গোপন", masked.ReporterName)
	assert.Empty(t, masked.ReporterEmail)
	assert.Empty(t, masked.ReporterPhone)

	// Original value must not be mutated.
	assert.Equal(t, "Rahim Uddin", r.ReporterName)

	r.IsAnonymous = false
	open := r.MaskAnonymous()
	assert.Equal(t, "Rahim Uddin", open.ReporterName)
	assert.Equal(t, "rahim@example.com", open.ReporterEmail)
}

func TestAverageRating(t *testing.T) {
	var r Report
	avg, count := r.AverageRating()
	assert.Zero(t, avg)
	assert.Zero(t, count)

	r.Reviews = []Review{
		{Rating: 5, CreatedAt: time.Now()},
		{Rating: 4, CreatedAt: time.Now()},
		{Rating: 4, CreatedAt: time.Now()},
	}
	avg, count = r.AverageRating()
	assert.Equal(t, 4.3, avg)
	assert.Equal(t, 3, count)

	r.Reviews = []Review{{Rating: 1}, {Rating: 2}}
	avg, count = r.AverageRating()
	assert.Equal(t, 1.5, avg)
	assert.Equal(t, 2, count)
}

func validDraft() Draft {
	return Draft{
		Title:         "চাঁদাবাজির অভিযোগ",
		Category:      Categories[0],
		Location:      "Chittagong",
		Description:   "দোকানের সামনে নিয়মিত চাঁদা দাবি করা হচ্ছে।",
		ReporterName:  "Karim",
		ReporterEmail: "karim@example.com",
		ReporterPhone: "01812345678",
	}
}

func TestDraftValidate(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.Validate())

	t.Run("required fields", func(t *testing.T) {
		d := validDraft()
		d.Title = "   "
		assert.Error(t, d.Validate())

		d = validDraft()
		d.Description = ""
		assert.Error(t, d.Validate())

		d = validDraft()
		d.ReporterName = ""
		assert.Error(t, d.Validate())

		d = validDraft()
		d.ReporterEmail = "not-an-email"
		assert.Error(t, d.Validate())

		d = validDraft()
		d.ReporterPhone = ""
		assert.Error(t, d.Validate())
	})

	t.Run("membership", func(t *testing.T) {
		d := validDraft()
		d.Category = "Unknown Category"
		assert.Error(t, d.Validate())

		d = validDraft()
		d.Location = "Atlantis"
		assert.Error(t, d.Validate())
	})

	t.Run("dhaka requires sub-location", func(t *testing.T) {
		d := validDraft()
		d.Location = DistrictDhaka
		assert.Error(t, d.Validate())

		d.SubLocation = "নেই এমন ইউনিয়ন"
		assert.Error(t, d.Validate())

		d.SubLocation = "আশুলিয়া ইউনিয়ন"
		assert.NoError(t, d.Validate())
	})

	t.Run("savar requires ward", func(t *testing.T) {
		d := validDraft()
		d.Location = DistrictDhaka
		d.SubLocation = SubLocationSavar
		assert.Error(t, d.Validate())

		d.Ward = "ওয়ার্ড নং ৯৯"
		assert.Error(t, d.Validate())

		d.Ward = "ওয়ার্ড নং ৩"
		assert.NoError(t, d.Validate())
	})

	t.Run("stale drill-down cleared outside dhaka", func(t *testing.T) {
		d := validDraft()
		d.Location = "Sylhet"
		d.SubLocation = SubLocationSavar
		d.Ward = "ওয়ার্ড নং ১"

		require.NoError(t, d.Validate())
		assert.Empty(t, d.SubLocation)
		assert.Empty(t, d.Ward)
	})

	t.Run("stale ward cleared outside savar", func(t *testing.T) {
		d := validDraft()
		d.Location = DistrictDhaka
		d.SubLocation = "বিরুলিয়া ইউনিয়ন"
		d.Ward = "ওয়ার্ড নং ২"

		require.NoError(t, d.Validate())
		assert.Empty(t, d.Ward)
	})
}
