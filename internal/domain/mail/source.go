package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kakeibo-dev/kakeibo/internal/domain/import/charset"
)

// DirSource reads notification bodies dropped into a directory as files,
// one message per file. Files are renamed with a ".done" suffix after a
// fetch so a body is only handed out once. Exported inboxes and local
// forwarding scripts both produce this layout.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over the given directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// FetchUnread returns all pending bodies, decoded to UTF-8. Legacy
// encodings show up here too since card issuers mail in ISO-2022-JP and
// Shift_JIS.
func (s *DirSource) FetchUnread(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read mail directory: %w", err)
	}

	var bodies []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".done") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read mail file %s: %w", entry.Name(), err)
		}
		bodies = append(bodies, charset.Decode(raw))

		if err := os.Rename(path, path+".done"); err != nil {
			return nil, fmt.Errorf("mark mail file processed: %w", err)
		}
	}
	return bodies, nil
}
