package sales

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document type code for invoices in the SRI catalogue
const documentTypeInvoice = "01"

// Emission type "1" is normal emission
const emissionTypeNormal = "1"

// AccessKeyInput holds the parts of a 49-digit SRI access key
type AccessKeyInput struct {
	IssuedAt          time.Time
	RUC               string
	Environment       string
	EstablishmentCode string
	EmissionPoint     string
	Sequential        int64
	Seed              uuid.UUID
}

// GenerateAccessKey builds the access key:
// ddmmyyyy | doc type | RUC | environment | series | sequential | numeric code | emission type | check digit
func GenerateAccessKey(in AccessKeyInput) string {
	ruc := in.RUC
	if len(ruc) != 13 {
		ruc = strings.Repeat("0", 13)
	}
	env := in.Environment
	if env != "1" && env != "2" {
		env = "1"
	}

	var b strings.Builder
	b.WriteString(in.IssuedAt.Format("02012006"))
	b.WriteString(documentTypeInvoice)
	b.WriteString(ruc)
	b.WriteString(env)
	b.WriteString(padDigits(in.EstablishmentCode, 3))
	b.WriteString(padDigits(in.EmissionPoint, 3))
	b.WriteString(fmt.Sprintf("%09d", in.Sequential%1_000_000_000))
	b.WriteString(numericCode(in.Seed))
	b.WriteString(emissionTypeNormal)

	key := b.String()
	return key + fmt.Sprint(Modulo11(key))
}

// Modulo11 computes the check digit with weights 2..7 applied right to left
func Modulo11(digits string) int {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}
	check := 11 - sum%11
	switch check {
	case 11:
		return 0
	case 10:
		return 1
	}
	return check
}

// FormatInvoiceNumber renders EEE-PPP-NNNNNNNNN
func FormatInvoiceNumber(establishment, point string, sequential int64) string {
	return fmt.Sprintf("%s-%s-%09d", padDigits(establishment, 3), padDigits(point, 3), sequential)
}

func numericCode(seed uuid.UUID) string {
	h := fnv.New32a()
	_, _ = h.Write(seed[:])
	return fmt.Sprintf("%08d", h.Sum32()%100_000_000)
}

func padDigits(s string, n int) string {
	if len(s) >= n {
		return s[len(s)-n:]
	}
	return strings.Repeat("0", n-len(s)) + s
}
