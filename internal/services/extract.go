package services

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/intern_service/internal/domain"
	"github.com/SundayYogurt/intern_service/internal/dto"
	"github.com/SundayYogurt/intern_service/internal/helper/utils"
)

// โดเมนปลอมสำหรับ candidate ที่ไม่มีอีเมลมาเลย
const placeholderEmailDomain = "intern.generated.local"

// คีย์เวิร์ดของ label ในฟอร์ม (ฟอร์มเก่ามีทั้งไทยและอังกฤษ)
var (
	nameKeywords        = []string{"full name", "name", "ชื่อ"}
	emailKeywords       = []string{"email", "e-mail", "อีเมล"}
	phoneKeywords       = []string{"phone", "tel", "mobile", "เบอร์", "โทร"}
	institutionKeywords = []string{"institution", "university", "school", "สถาบัน", "มหาวิทยาลัย", "โรงเรียน"}
	divisionKeywords    = []string{"division", "department", "unit", "แผนก", "ฝ่าย"}
	startKeywords       = []string{"start", "begin", "เริ่ม"}
	endKeywords         = []string{"end", "finish", "สิ้นสุด"}
)

// ฟอร์ม legacy ไม่มี label ใช้เลขตำแหน่งเป็น key ตรง ๆ
var positionalKeys = map[string]string{
	"name":        "1",
	"email":       "2",
	"phone":       "3",
	"institution": "4",
	"division":    "5",
	"start":       "6",
	"end":         "7",
}

func answerString(answers map[string]any, key string) string {
	v, ok := answers[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON number
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func fieldAnswer(answers map[string]any, f domain.FormField) string {
	if v := answerString(answers, strconv.FormatUint(uint64(f.ID), 10)); v != "" {
		return v
	}
	return answerString(answers, f.Label)
}

// findByLabel หา field ที่ label ตรงกับคีย์เวิร์ด แล้วดึงคำตอบ (answers key ด้วย field id หรือ label)
// ไล่คีย์เวิร์ดจากเจาะจงสุดก่อน แล้วค่อยตาม field ไม่งั้น "Institution Name"
// ที่มาก่อน "Full Name" จะโดนคีย์เวิร์ด "name" คว้าไปเป็นชื่อคน
func findByLabel(answers map[string]any, fields []domain.FormField, keywords []string) string {
	for _, kw := range keywords {
		// label ตรงตัวชนะ label ที่แค่มีคำนี้ปน
		for _, f := range fields {
			if strings.ToLower(f.Label) != kw {
				continue
			}
			if v := fieldAnswer(answers, f); v != "" {
				return v
			}
		}
		for _, f := range fields {
			if !strings.Contains(strings.ToLower(f.Label), kw) {
				continue
			}
			if v := fieldAnswer(answers, f); v != "" {
				return v
			}
		}
	}
	return ""
}

func extractField(answers map[string]any, fields []domain.FormField, keywords []string, positional string) string {
	if v := findByLabel(answers, fields, keywords); v != "" {
		return v
	}
	return answerString(answers, positionalKeys[positional])
}

// scanForEmail ไล่ดูทุกค่าใน answers หาอะไรที่หน้าตาเป็นอีเมล (ไล่ key แบบ sort ให้ deterministic)
func scanForEmail(answers map[string]any) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if v := answerString(answers, k); utils.IsEmail(v) {
			return v
		}
	}
	return ""
}

func parseAnswerDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// synthesizeEmail สร้างอีเมล placeholder จากชื่อ+สถาบัน ได้ค่าเดิมเสมอสำหรับ input เดิม
func synthesizeEmail(name, institution string) string {
	slug := utils.Slugify(name)
	if slug == "" {
		slug = "intern"
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(name) + "|" + strings.TrimSpace(institution))))

	if instSlug := utils.Slugify(institution); instSlug != "" {
		return fmt.Sprintf("%s.%s.%x@%s", slug, instSlug, h.Sum32(), placeholderEmailDomain)
	}
	return fmt.Sprintf("%s.%x@%s", slug, h.Sum32(), placeholderEmailDomain)
}

// extractCandidate แปลง answers ดิบหนึ่งชุดเป็น CandidateRecord
// คืน division ที่ผู้สมัครกรอกมาเป็น string ดิบ ให้ approval service ไป resolve เอง
func extractCandidate(answers map[string]any, fields []domain.FormField) (dto.CandidateRecord, string) {
	candidate := dto.CandidateRecord{
		FullName:    extractField(answers, fields, nameKeywords, "name"),
		Institution: extractField(answers, fields, institutionKeywords, "institution"),
	}

	email := extractField(answers, fields, emailKeywords, "email")
	if !utils.IsEmail(email) {
		email = scanForEmail(answers)
	}
	if email == "" {
		email = synthesizeEmail(candidate.FullName, candidate.Institution)
	}
	candidate.Email = strings.ToLower(email)

	if phone := extractField(answers, fields, phoneKeywords, "phone"); phone != "" {
		candidate.Phone = &phone
	}
	candidate.StartDate = parseAnswerDate(extractField(answers, fields, startKeywords, "start"))
	candidate.EndDate = parseAnswerDate(extractField(answers, fields, endKeywords, "end"))

	divisionRef := extractField(answers, fields, divisionKeywords, "division")

	return candidate, divisionRef
}
