package portfolio

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/folio/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// Export formats
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"

	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

// exportVersion is bumped whenever the document layout changes
const exportVersion = 1

// ExportDocument is the portable form of a portfolio: raw inputs only,
// since derived values are always recomputed on import.
type ExportDocument struct {
	Version    int             `json:"version" msgpack:"version"`
	ExportedAt time.Time       `json:"exported_at" msgpack:"exported_at"`
	Positions  []PositionInput `json:"positions" msgpack:"positions"`
}

// NewExportDocument wraps inputs in a versioned document
func NewExportDocument(inputs []PositionInput) ExportDocument {
	if inputs == nil {
		inputs = []PositionInput{}
	}
	return ExportDocument{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Positions:  inputs,
	}
}

// FormatForContentType picks the codec for a request Content-Type header
func FormatForContentType(contentType string) string {
	if strings.Contains(strings.ToLower(contentType), "msgpack") {
		return FormatMsgpack
	}
	return FormatJSON
}

// EncodeDocument serializes doc in the given format
func EncodeDocument(doc ExportDocument, format string) ([]byte, string, error) {
	switch format {
	case FormatMsgpack:
		data, err := msgpack.Marshal(&doc)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode msgpack export: %w", err)
		}
		return data, ContentTypeMsgpack, nil
	case FormatJSON, "":
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode json export: %w", err)
		}
		return data, ContentTypeJSON, nil
	}
	return nil, "", domain.NewValidationError("format", "unsupported export format %q", format)
}

// DecodeDocument parses an export document. Malformed input is a ValidationError.
func DecodeDocument(data []byte, format string) (ExportDocument, error) {
	if format == "" {
		format = FormatJSON
	}

	var doc ExportDocument
	var err error

	switch format {
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return ExportDocument{}, domain.NewValidationError("format", "unsupported import format %q", format)
	}
	if err != nil {
		return ExportDocument{}, &domain.ValidationError{Message: fmt.Sprintf("malformed %s document: %v", format, err)}
	}

	if doc.Version > exportVersion {
		return ExportDocument{}, domain.NewValidationError("version", "unsupported document version %d", doc.Version)
	}
	return doc, nil
}
