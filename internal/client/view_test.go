package client

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/internal/models"
)

func runSession(t *testing.T, f *fakeServer, script ...string) string {
	t.Helper()

	store := newStore(t, f)
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(script, "\n") + "\n")

	view := NewView(store, in, out)
	require.NoError(t, view.Run(context.Background()))
	return out.String()
}

func TestViewSearchFilter(t *testing.T) {
	f := &fakeServer{products: []models.Product{seed("Widget"), seed("Gadget")}}

	out := runSession(t, f, "search wid", "q")

	// Tras el filtro solo queda Widget
	last := out[strings.LastIndex(out, "📦"):]
	assert.Contains(t, last, "Widget")
	assert.NotContains(t, last, "Gadget")
	assert.Contains(t, last, `search="wid"`)
}

func TestViewCategoryFilter(t *testing.T) {
	widget, hammer := seed("Widget"), seed("Hammer")
	hammer.Category = "Hardware"
	f := &fakeServer{products: []models.Product{widget, hammer}}

	out := runSession(t, f, "cat Hardware", "q")

	last := out[strings.LastIndex(out, "📦"):]
	assert.Contains(t, last, "Hammer")
	assert.NotContains(t, last, "Widget")
}

func TestViewCarouselWindow(t *testing.T) {
	f := &fakeServer{products: []models.Product{seed("A"), seed("B"), seed("C")}}

	out := runSession(t, f, "n", "q")

	// La ventana muestra 2 tarjetas y n avanza sin salirse del borde
	assert.Contains(t, out, "(1-2 of 3, n/p to scroll)")
	assert.Contains(t, out, "(2-3 of 3, n/p to scroll)")
}

func TestViewRemove(t *testing.T) {
	p := seed("Widget")
	f := &fakeServer{products: []models.Product{p}}

	out := runSession(t, f, "rm "+p.ID.Hex(), "q")

	assert.Contains(t, out, "🗑️ Product deleted")
	assert.Contains(t, out, "📦 Products (0)")
}

func TestViewAdd(t *testing.T) {
	f := &fakeServer{}
	image := tempImage(t, 32)

	out := runSession(t, f,
		"add", "Widget", "Tools", "A widget", image,
		"q")

	assert.Contains(t, out, "✅ Product added")
	assert.Contains(t, out, "📦 Products (1)")
}

func TestViewEditKeepsFieldsOnEmptyInput(t *testing.T) {
	p := seed("Widget")
	f := &fakeServer{products: []models.Product{p}}

	out := runSession(t, f,
		"edit "+p.ID.Hex(), "Widget Pro", "", "", "",
		"q")

	assert.Contains(t, out, "✅ Product updated")
	assert.Contains(t, out, "Widget Pro")

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.products, 1)
	assert.Equal(t, "Widget Pro", f.products[0].Name)
	assert.Equal(t, "Tools", f.products[0].Category, "empty input keeps the current value")
	assert.Equal(t, "/uploads/seeded.png", f.products[0].Image, "image stays without a new file")
}
