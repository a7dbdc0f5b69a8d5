package shell

import (
	"fmt"
	"io"

	"lumincoin/internal/router"
)

// Terminal is a router document that announces page changes on a writer.
// It also shows alerts.
type Terminal struct {
	*router.MemoryDocument
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{MemoryDocument: router.NewMemoryDocument(), out: out}
}

func (t *Terminal) SetTitle(title string) {
	t.MemoryDocument.SetTitle(title)
	fmt.Fprintf(t.out, "== %s ==\n", title)
}

func (t *Terminal) Alert(msg string) {
	fmt.Fprintf(t.out, "! %s\n", msg)
}
