package renderer

import "fmt"

// MockRenderer returns canned bytes, or a settable error, and records what
// it was asked to render.
type MockRenderer struct {
	err      error
	failFor  map[string]error
	Rendered []string
}

func NewMockRenderer() *MockRenderer {
	return &MockRenderer{failFor: make(map[string]error)}
}

func (r *MockRenderer) SetError(err error) {
	r.err = err
}

// SetErrorFor makes only the given code/lang pair fail.
func (r *MockRenderer) SetErrorFor(code, lang string, err error) {
	r.failFor[code+"/"+lang] = err
}

func (r *MockRenderer) RenderActivityPDF(code, lang string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err, ok := r.failFor[code+"/"+lang]; ok {
		return nil, err
	}

	r.Rendered = append(r.Rendered, code+"/"+lang)
	return []byte(fmt.Sprintf("%%PDF %s %s", code, lang)), nil
}
