package engine

import (
	"bytes"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// decodeBody converts body to UTF-8 text. The media type comes from
// contentType, or is sniffed from the body when the server sent none.
func decodeBody(body []byte, contentType string) (string, string) {
	if contentType == "" {
		contentType = mimetype.Detect(body).String()
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "application/octet-stream"
	}
	if !isText(mediaType) {
		return string(body), mediaType
	}

	name := params["charset"]
	if name == "" {
		name = detectCharset(body)
	}

	reader, err := charset.NewReader(bytes.NewReader(body), mediaType+"; charset="+name)
	if err != nil {
		return string(body), mediaType
	}
	text, err := io.ReadAll(reader)
	if err != nil {
		return string(body), mediaType
	}
	return string(text), mediaType
}

// detectCharset guesses the encoding of body, defaulting to utf-8.
func detectCharset(body []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(body)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

func isText(mediaType string) bool {
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/xhtml+xml",
		mediaType == "application/xml",
		mediaType == "application/json",
		mediaType == "application/javascript":
		return true
	default:
		return false
	}
}

func isHTML(mediaType string) bool {
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
