package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File: готовая выгрузка.
type File struct {
	Name     string
	MimeType string
	Content  []byte
}

// Sink принимает готовый файл: каталог на диске, ответ RPC и т.п.
type Sink interface {
	Deliver(ctx context.Context, f File) error
}

// SinkFunc позволяет использовать функцию как Sink.
type SinkFunc func(ctx context.Context, f File) error

func (fn SinkFunc) Deliver(ctx context.Context, f File) error { return fn(ctx, f) }

// TriggerDownload передаёт content в sink под именем filename.
func TriggerDownload(ctx context.Context, sink Sink, content, filename, mimeType string) error {
	if sink == nil {
		return errors.New("download sink is nil")
	}
	if filename == "" || filepath.Base(filename) != filename {
		return fmt.Errorf("invalid download filename %q", filename)
	}
	return sink.Deliver(ctx, File{Name: filename, MimeType: mimeType, Content: []byte(content)})
}

// DirSink пишет файлы в каталог. Запись идёт во временный файл рядом
// с целевым, который закрывается и удаляется на любом пути выхода;
// целевой файл появляется только после успешного rename.
type DirSink struct {
	Dir string
}

func (s DirSink) Deliver(ctx context.Context, f File) (err error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+f.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if _, err = tmp.Write(f.Content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, filepath.Join(s.Dir, f.Name)); err != nil {
		return fmt.Errorf("publish export file: %w", err)
	}
	return nil
}
