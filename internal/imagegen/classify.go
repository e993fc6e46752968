package imagegen

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	sniffMinBytes   = 200
	errorPreviewLen = 500
	fallbackMime    = "image/png"
)

// attempt is the raw result of one POST.
type attempt struct {
	url         string
	statusCode  int
	contentType string
	body        []byte
	err         error // transport failure, no response
}

// outcome is the tagged result of classifying an attempt.
type outcome interface {
	isOutcome()
}

type (
	gotImage        struct{ image Image }
	modelLoading    struct{ detail string }
	notAnImage      struct{ detail string }
	endpointMissing struct{ detail string }
	modelFailed     struct {
		status int
		detail string
		err    error
	}
)

func (gotImage) isOutcome() {}
func (modelLoading) isOutcome() {}
func (notAnImage) isOutcome() {}
func (endpointMissing) isOutcome() {}
func (modelFailed) isOutcome() {}

func classify(a attempt) outcome {
	if a.err != nil {
		return modelFailed{err: a.err, detail: a.err.Error()}
	}
	if a.statusCode < 200 || a.statusCode > 299 {
		msg := upstreamMessage(a.body)
		if a.statusCode == http.StatusNotFound {
			return endpointMissing{detail: msg}
		}
		return modelFailed{status: a.statusCode, detail: msg}
	}
	if LooksLikeImage(a.contentType, a.body) {
		return gotImage{image: Image{Data: a.body, MimeType: ImageMimeType(a.contentType)}}
	}
	msg := jsonError(a.body)
	if strings.Contains(strings.ToLower(msg), "loading") {
		return modelLoading{detail: msg}
	}
	return notAnImage{detail: msg}
}

// LooksLikeImage decides whether a 2xx body is image data. Providers answer
// either with raw bytes or with a JSON placeholder, so a declared image type
// wins, and otherwise any body over 200 bytes that does not open with '{'
// is taken as binary.
func LooksLikeImage(contentType string, body []byte) bool {
	if strings.Contains(contentType, "image/") {
		return true
	}
	return len(body) > sniffMinBytes && body[0] != '{'
}

// ImageMimeType returns the declared image type without parameters, or
// image/png when the declaration is missing or not an image type.
func ImageMimeType(contentType string) string {
	if !strings.Contains(contentType, "image/") {
		return fallbackMime
	}
	mime, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(mime)
}

// upstreamMessage prefers a JSON error or message field, else the first
// 500 bytes of the raw body.
func upstreamMessage(body []byte) string {
	if msg := jsonError(body); msg != "" {
		return msg
	}
	var fields map[string]any
	if json.Unmarshal(body, &fields) == nil {
		if msg, ok := fields["message"].(string); ok && msg != "" {
			return msg
		}
	}
	if len(body) > errorPreviewLen {
		body = body[:errorPreviewLen]
	}
	return strings.ToValidUTF8(string(body), "")
}

func jsonError(body []byte) string {
	var fields map[string]any
	if json.Unmarshal(body, &fields) != nil {
		return ""
	}
	msg, _ := fields["error"].(string)
	return msg
}
