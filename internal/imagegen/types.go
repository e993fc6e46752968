package imagegen

import (
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	ErrExhausted    = errors.New("no model returned an image")
	ErrPromptFailed = errors.New("could not derive an image prompt")

	ErrResponseTooLarge = errors.New("image response exceeds size limit")
)

// Candidate is one entry of the ordered model list.
type Candidate struct {
	Model      string
	Parameters map[string]float64
}

// Image is a successful generation.
type Image struct {
	Data     []byte
	MimeType string
}

// DataURI embeds the image as data:<mime>;base64,<payload>.
func (img Image) DataURI() string {
	return "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Failure is the error variant of a generation. StatusCode is 0 when the
// provider never answered. Detail holds the provider's own message for logs
// and hint mapping; Message is safe to show.
type Failure struct {
	Message    string
	StatusCode int
	Detail     string
	Model      string
	cause      error
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("image generation failed: %s (status %d)", f.Message, f.StatusCode)
	}
	return "image generation failed: " + f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// generateRequest is the body posted to every endpoint variant.
type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
}
