package topics

// Renderer turns a topic file into terminal output. ext is the file
// extension including the dot, e.g. ".md", so renderers can leave formats
// they do not understand alone.
type Renderer interface {
	Render(content string, ext string) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content string, ext string) string

// Render calls f
func (f RendererFunc) Render(content string, ext string) string {
	return f(content, ext)
}

// PlainRenderer prints topics verbatim. It is used when no renderer is
// configured and when output is not a terminal.
type PlainRenderer struct{}

// Render returns content unchanged
func (PlainRenderer) Render(content string, _ string) string {
	return content
}
