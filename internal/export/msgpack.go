package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the MessagePack representation of a table.
type Snapshot struct {
	RunID    string        `msgpack:"run_id"`
	LoadedAt time.Time     `msgpack:"loaded_at"`
	Records  []core.Record `msgpack:"records"`
}

// MsgpackExporter writes a MessagePack snapshot of the table.
type MsgpackExporter struct {
	Path string
}

func (e *MsgpackExporter) Kind() Kind { return KindMsgpack }

// Export writes the snapshot to Path.
func (e *MsgpackExporter) Export(ctx context.Context, table *core.Table) error {
	f, err := os.Create(e.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", e.Path, err)
	}
	defer f.Close()

	if err := WriteSnapshot(f, table); err != nil {
		return err
	}
	return f.Close()
}

// WriteSnapshot encodes table to w.
func WriteSnapshot(w io.Writer, table *core.Table) error {
	snap := Snapshot{
		RunID:    table.RunID().String(),
		LoadedAt: table.LoadedAt(),
		Records:  table.Records(),
	}
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode msgpack: %w", err)
	}
	return &snap, nil
}
