package export

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/JonMunkholm/pricelist/internal/web/templates"
)

// DocumentTitle is the heading of exported HTML pages.
const DocumentTitle = "Прайс-листы"

// HTMLExporter writes the table as a static HTML document.
type HTMLExporter struct {
	Path string
}

func (e *HTMLExporter) Kind() Kind { return KindHTML }

// Export renders every record, with all columns, to Path.
func (e *HTMLExporter) Export(ctx context.Context, table *core.Table) error {
	f, err := os.Create(e.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", e.Path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	doc := templates.Document(templates.DocumentParams{
		Title:    DocumentTitle,
		RunID:    table.RunID().String(),
		LoadedAt: table.LoadedAt(),
		Records:  table.Records(),
	})
	if err := doc.Render(ctx, bw); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", e.Path, err)
	}

	return f.Close()
}
