package youtubeapi

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// APIError is a non-200 answer from the Data API, decoded from Google's error envelope.
type APIError struct {
	StatusCode   int
	Code         int64
	Message      string
	Reason       string
	Status       string
	DetailReason string
	Body         string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube api status %d (%s): %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("youtube api status %d: %s", e.StatusCode, e.Message)
}

// IsCredential reports whether the key was rejected.
func (e *APIError) IsCredential() bool {
	if e.StatusCode == 401 || e.Status == "UNAUTHENTICATED" {
		return true
	}
	switch e.Reason {
	case "keyInvalid", "keyExpired", "authError":
		return true
	}
	switch e.DetailReason {
	case "API_KEY_INVALID", "API_KEY_EXPIRED":
		return true
	}
	return strings.Contains(e.Message, "API key not valid")
}

// IsNotFound reports whether the requested video or comment does not exist.
func (e *APIError) IsNotFound() bool {
	switch e.Reason {
	case "videoNotFound", "commentNotFound", "commentThreadNotFound", "parentCommentNotFound":
		return true
	}
	return e.StatusCode == 404
}

func parseAPIError(response *APIResponse) *APIError {
	apiErr := &APIError{
		StatusCode: response.StatusCode,
		Body:       string(response.RawBody),
	}
	data := response.RawBody

	if code, err := jsonparser.GetInt(data, "error", "code"); err == nil {
		apiErr.Code = code
	}
	if message, err := jsonparser.GetString(data, "error", "message"); err == nil {
		apiErr.Message = message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if status, err := jsonparser.GetString(data, "error", "status"); err == nil {
		apiErr.Status = status
	}
	if reason, err := jsonparser.GetString(data, "error", "errors", "[0]", "reason"); err == nil {
		apiErr.Reason = reason
	}
	jsonparser.ArrayEach(data, func(detail []byte, dataType jsonparser.ValueType, offset int, err error) {
		if apiErr.DetailReason != "" || err != nil {
			return
		}
		if reason, err := jsonparser.GetString(detail, "reason"); err == nil {
			apiErr.DetailReason = reason
		}
	}, "error", "details")

	return apiErr
}

// FieldError means a 200 response lacked, or carried an unusable, field that
// pagination depends on.
type FieldError struct {
	Field  string
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("field %s: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("field %s missing", e.Field)
}

// checkPaginationFields validates the continuation fields of a list response.
// A malformed nextPageToken is removed from the body so the rest still decodes.
func checkPaginationFields(body []byte) ([]byte, *FieldError) {
	if _, _, _, err := jsonparser.Get(body, FieldItems); err == jsonparser.KeyPathNotFoundError {
		return body, &FieldError{Field: FieldItems}
	}

	_, dataType, _, err := jsonparser.Get(body, FieldNextPageToken)
	if err == jsonparser.KeyPathNotFoundError {
		return body, nil
	}
	if err != nil {
		return body, &FieldError{Field: FieldNextPageToken, Detail: err.Error()}
	}
	if dataType != jsonparser.String {
		return jsonparser.Delete(body, FieldNextPageToken), &FieldError{
			Field:  FieldNextPageToken,
			Detail: "expected string, got " + dataType.String(),
		}
	}
	return body, nil
}
