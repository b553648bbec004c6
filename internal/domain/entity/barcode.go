package entity

import errs "github.com/nileacademy/apple-rewards/internal/domain/error"

// BarcodeType classifies a scanned barcode by its leading digit
type BarcodeType string

const (
	// BarcodeStudent marks codes starting with "1"
	BarcodeStudent BarcodeType = "student"
	// BarcodeAdmin marks codes starting with "2" (admin session check-in)
	BarcodeAdmin BarcodeType = "admin"
	// BarcodeAssistant marks codes starting with "3"
	BarcodeAssistant BarcodeType = "assistant"
)

// ClassifyBarcode maps a barcode to its scan target by leading digit:
// 1 = student, 2 = admin self check-in, 3 = assistant.
func ClassifyBarcode(barcode string) (BarcodeType, error) {
	if barcode == "" {
		return "", errs.ErrInvalidRequest
	}
	switch barcode[0] {
	case '1':
		return BarcodeStudent, nil
	case '2':
		return BarcodeAdmin, nil
	case '3':
		return BarcodeAssistant, nil
	default:
		return "", errs.ErrInvalidBarcode
	}
}

// CanScan reports whether a caller with the given role may scan the given
// barcode type. Admins may scan anything; assistants only student codes.
func CanScan(callerRole Role, target BarcodeType) bool {
	switch callerRole {
	case RoleAdmin:
		return true
	case RoleAssistant:
		return target == BarcodeStudent
	default:
		return false
	}
}
