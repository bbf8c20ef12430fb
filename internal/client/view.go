package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"product-catalog/internal/models"
)

// visibleCards es el ancho de la ventana del carrusel
const visibleCards = 2

// View es la sesión interactiva de terminal: carrusel sobre la lista
// filtrada, búsqueda por nombre, filtro por categoría y los
// formularios de alta/edición/borrado contra el Store.
type View struct {
	store *Store
	in    *bufio.Scanner
	out   io.Writer

	search   string
	category string
	index    int
}

func NewView(store *Store, in io.Reader, out io.Writer) *View {
	return &View{
		store: store,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run carga el catálogo y entra al bucle de comandos
func (v *View) Run(ctx context.Context) error {
	if err := v.store.Fetch(ctx); err != nil {
		fmt.Fprintln(v.out, "⚠️", v.store.StatusOf(OpFetch).Err)
	}

	for {
		v.render()
		fmt.Fprint(v.out, "> ")
		if !v.in.Scan() {
			return v.in.Err()
		}

		line := strings.TrimSpace(v.in.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "n", "next":
			v.move(1)
		case "p", "prev":
			v.move(-1)
		case "search":
			v.search = arg
			v.index = 0
		case "cat":
			v.category = arg
			v.index = 0
		case "add":
			v.add(ctx)
		case "edit":
			v.edit(ctx, arg)
		case "rm":
			if arg == "" {
				fmt.Fprintln(v.out, "usage: rm <id>")
				continue
			}
			if err := v.store.Remove(ctx, arg); err == nil {
				fmt.Fprintln(v.out, "🗑️ Product deleted")
			}
		case "reload":
			_ = v.store.Fetch(ctx)
		case "help":
			v.help()
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintf(v.out, "unknown command %q (try help)\n", cmd)
		}
	}
}

// filtered aplica búsqueda y categoría sobre el espejo local
func (v *View) filtered() []models.Product {
	items, _ := v.store.Snapshot()

	out := []models.Product{}
	for _, p := range items {
		if v.search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(v.search)) {
			continue
		}
		if v.category != "" && p.Category != v.category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// move desplaza la ventana del carrusel sin salirse de los bordes
func (v *View) move(delta int) {
	max := len(v.filtered()) - visibleCards
	if max < 0 {
		max = 0
	}
	v.index += delta
	if v.index < 0 {
		v.index = 0
	}
	if v.index > max {
		v.index = max
	}
}

func (v *View) render() {
	products := v.filtered()
	_, ops := v.store.Snapshot()

	fmt.Fprintln(v.out)
	fmt.Fprintf(v.out, "📦 Products (%d)", len(products))
	if v.search != "" {
		fmt.Fprintf(v.out, "  search=%q", v.search)
	}
	if v.category != "" {
		fmt.Fprintf(v.out, "  category=%q", v.category)
	}
	fmt.Fprintln(v.out)

	// La lista pudo encoger desde el último render
	if v.index > len(products)-visibleCards {
		v.index = len(products) - visibleCards
	}
	if v.index < 0 {
		v.index = 0
	}

	end := v.index + visibleCards
	if end > len(products) {
		end = len(products)
	}
	for _, p := range products[v.index:end] {
		fmt.Fprintf(v.out, "  [%s] %s · %s\n", p.ID.Hex(), p.Name, p.Category)
		fmt.Fprintf(v.out, "      %s\n", p.Description)
		fmt.Fprintf(v.out, "      %s%s · %s\n", v.store.svc.BaseURL(), p.Image, p.CreatedAt.Format("2006-01-02"))
	}
	if len(products) > visibleCards {
		fmt.Fprintf(v.out, "  (%d-%d of %d, n/p to scroll)\n", v.index+1, end, len(products))
	}

	labels := [numOps]string{OpFetch: "fetch", OpAdd: "add", OpEdit: "edit", OpRemove: "remove"}
	for op, label := range labels {
		if ops[op].Loading {
			fmt.Fprintf(v.out, "  ⏳ %s in progress\n", label)
		}
		if ops[op].Err != "" {
			fmt.Fprintf(v.out, "  ❌ %s: %s\n", label, ops[op].Err)
		}
	}
}

func (v *View) add(ctx context.Context) {
	form := ProductForm{
		Name:        v.ask("name"),
		Category:    v.ask("category"),
		Description: v.ask("description"),
		ImagePath:   v.ask("image file"),
	}
	if err := v.store.Add(ctx, form); err == nil {
		fmt.Fprintln(v.out, "✅ Product added")
	}
}

func (v *View) edit(ctx context.Context, id string) {
	if id == "" {
		fmt.Fprintln(v.out, "usage: edit <id>")
		return
	}

	current, ok := v.find(id)
	if !ok {
		fmt.Fprintln(v.out, "Product not found")
		return
	}

	// Campo vacío = conservar el valor actual; la imagen solo
	// cambia si se indica un archivo nuevo
	form := ProductForm{
		Name:        v.askDefault("name", current.Name),
		Category:    v.askDefault("category", current.Category),
		Description: v.askDefault("description", current.Description),
		ImagePath:   v.ask("new image file (empty keeps current)"),
	}
	if err := v.store.Edit(ctx, id, form); err == nil {
		fmt.Fprintln(v.out, "✅ Product updated")
	}
}

func (v *View) find(id string) (models.Product, bool) {
	items, _ := v.store.Snapshot()
	for _, p := range items {
		if p.ID.Hex() == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (v *View) ask(label string) string {
	fmt.Fprintf(v.out, "%s: ", label)
	if !v.in.Scan() {
		return ""
	}
	return strings.TrimSpace(v.in.Text())
}

func (v *View) askDefault(label, current string) string {
	answer := v.ask(fmt.Sprintf("%s [%s]", label, current))
	if answer == "" {
		return current
	}
	return answer
}

func (v *View) help() {
	fmt.Fprintln(v.out, `commands:
  n / p         scroll the carousel
  search <text> filter by product name
  cat <text>    filter by category (empty clears)
  add           create a product
  edit <id>     update a product
  rm <id>       delete a product
  reload        refetch the catalog
  q             quit`)
}
