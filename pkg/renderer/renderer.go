// Package renderer talks to the external PDF rendering service. The core
// never generates PDFs itself; it hands the service an activity
// code/language pair and gets bytes back.
package renderer

type Renderer interface {
	RenderActivityPDF(code, lang string) ([]byte, error)
}
