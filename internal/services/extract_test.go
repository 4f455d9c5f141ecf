package services

import (
	"strings"
	"testing"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formFields() []domain.FormField {
	return []domain.FormField{
		{ID: 101, Label: "Full Name", Position: 1},
		{ID: 102, Label: "Email Address", Position: 2},
		{ID: 103, Label: "Phone Number", Position: 3},
		{ID: 104, Label: "University / Institution", Position: 4},
		{ID: 105, Label: "Preferred Division", Position: 5},
		{ID: 106, Label: "Start Date", Position: 6},
	}
}

func TestExtractCandidateByLabel(t *testing.T) {
	answers := map[string]any{
		"101": "Somchai Jaidee",
		"102": "somchai@example.com",
		"103": "0812345678",
		"104": "Chulalongkorn University",
		"105": "Engineering",
		"106": "2026-06-01",
	}

	c, divisionRef := extractCandidate(answers, formFields())

	assert.Equal(t, "Somchai Jaidee", c.FullName)
	assert.Equal(t, "somchai@example.com", c.Email)
	require.NotNil(t, c.Phone)
	assert.Equal(t, "0812345678", *c.Phone)
	assert.Equal(t, "Chulalongkorn University", c.Institution)
	assert.Equal(t, "Engineering", divisionRef)
	require.NotNil(t, c.StartDate)
	assert.Equal(t, "2026-06-01", c.StartDate.Format("2006-01-02"))
}

func TestExtractCandidateSpecificLabelWinsOverFieldOrder(t *testing.T) {
	// "Institution Name" มาก่อน "Full Name" ต้องไม่โดนคว้าไปเป็นชื่อคน
	fields := []domain.FormField{
		{ID: 1, Label: "Institution Name"},
		{ID: 2, Label: "Full Name"},
		{ID: 3, Label: "Email"},
	}
	answers := map[string]any{
		"1": "Chulalongkorn University",
		"2": "Somchai Jaidee",
		"3": "somchai@example.com",
	}

	c, _ := extractCandidate(answers, fields)

	assert.Equal(t, "Somchai Jaidee", c.FullName)
	assert.Equal(t, "Chulalongkorn University", c.Institution)
	assert.Equal(t, "somchai@example.com", c.Email)
}

func TestExtractCandidateExactLabelWinsOverContains(t *testing.T) {
	fields := []domain.FormField{
		{ID: 1, Label: "Personal Email"},
		{ID: 2, Label: "Email"},
	}
	answers := map[string]any{
		"1": "me@gmail.com",
		"2": "somchai@example.com",
	}

	c, _ := extractCandidate(answers, fields)

	assert.Equal(t, "somchai@example.com", c.Email)
}

func TestExtractCandidateThaiLabels(t *testing.T) {
	fields := []domain.FormField{
		{ID: 1, Label: "ชื่อ-นามสกุล"},
		{ID: 2, Label: "อีเมลติดต่อ"},
		{ID: 3, Label: "สถาบันการศึกษา"},
	}
	answers := map[string]any{
		"1": "สมหญิง ใจดี",
		"2": "somying@example.com",
		"3": "มหาวิทยาลัยเชียงใหม่",
	}

	c, _ := extractCandidate(answers, fields)

	assert.Equal(t, "สมหญิง ใจดี", c.FullName)
	assert.Equal(t, "somying@example.com", c.Email)
	assert.Equal(t, "มหาวิทยาลัยเชียงใหม่", c.Institution)
}

func TestExtractCandidatePositionalFallback(t *testing.T) {
	// ฟอร์ม legacy ไม่มี field definitions เลย
	answers := map[string]any{
		"1": "Anan P.",
		"2": "anan@example.com",
		"3": "021234567",
		"4": "KMUTT",
	}

	c, _ := extractCandidate(answers, nil)

	assert.Equal(t, "Anan P.", c.FullName)
	assert.Equal(t, "anan@example.com", c.Email)
	assert.Equal(t, "KMUTT", c.Institution)
}

func TestExtractCandidateScansWholeMapForEmail(t *testing.T) {
	answers := map[string]any{
		"1":     "Ploy S.",
		"notes": "contact: ploy.s@example.com",
		"extra": "ploy.s@example.com",
	}

	c, _ := extractCandidate(answers, nil)

	assert.Equal(t, "ploy.s@example.com", c.Email)
}

func TestExtractCandidateRejectsMalformedEmail(t *testing.T) {
	// คำตอบช่องอีเมลเป็น path ไฟล์ ต้อง fallback ไป synthesize
	answers := map[string]any{
		"1": "Wichai T.",
		"2": "fakepath/cv.pdf",
		"4": "Khon Kaen University",
	}

	c, _ := extractCandidate(answers, nil)

	assert.NotEqual(t, "fakepath/cv.pdf", c.Email)
	assert.True(t, strings.HasSuffix(c.Email, "@"+placeholderEmailDomain), c.Email)
	assert.Contains(t, c.Email, "wichai.t")
}

func TestSynthesizeEmailDeterministic(t *testing.T) {
	a := synthesizeEmail("Wichai T.", "Khon Kaen University")
	b := synthesizeEmail("Wichai T.", "Khon Kaen University")
	c := synthesizeEmail("Wichai T.", "Chiang Mai University")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSynthesizeEmailEmptyName(t *testing.T) {
	got := synthesizeEmail("", "")
	assert.True(t, strings.HasPrefix(got, "intern."), got)
	assert.True(t, strings.HasSuffix(got, "@"+placeholderEmailDomain), got)
}

func TestParseAnswerDateFormats(t *testing.T) {
	require.NotNil(t, parseAnswerDate("2026-06-01"))
	require.NotNil(t, parseAnswerDate("01/06/2026"))
	assert.Nil(t, parseAnswerDate("June 1st"))
	assert.Nil(t, parseAnswerDate(""))
}
