// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper is a downloaded, compressed PDF on local disk.
type Paper struct {
	// Title is the original candidate title.
	Title string `json:"title" yaml:"title"`

	// Name is the sanitized file stem used for PDFPath and email subjects.
	Name string `json:"name" yaml:"name"`

	// PDFPath is the local path of the compressed PDF (<data-dir>/<name>.pdf).
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// SourceURL is the URL the PDF was downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// RawSize is the size in bytes of the PDF as downloaded.
	RawSize int64 `json:"raw_size" yaml:"raw_size"`

	// CompressedSize is the size in bytes after recompression.
	CompressedSize int64 `json:"compressed_size" yaml:"compressed_size"`
}

// Extraction is the cleaned text of one paper and the stage that produced it.
type Extraction struct {
	// Text is the cleaned text, or the no-text sentinel.
	Text string

	// Stage names the extraction stage that yielded Text. Empty when every
	// stage came back empty and Text holds the sentinel.
	Stage string
}

// Message is a single outgoing email.
type Message struct {
	Subject string
	Body    string
	To      string

	// AttachmentPath is optional. It is attached only if the file exists.
	AttachmentPath string
}
