// Package archive dumps the word store to a directory of JSON records, one
// file per word, and loads such a directory back.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

const ext = ".json"

type exporter interface {
	Export(ctx context.Context) ([]domain.Record, error)
}

type importer interface {
	Import(ctx context.Context, records []domain.Record) (*vocabulary.ImportResult, error)
}

// Report counts the records an archive operation handled.
type Report struct {
	Succeeded int
	Total     int
	Files     []string
}

func (r Report) String() string {
	return fmt.Sprintf("%d/%d", r.Succeeded, r.Total)
}

// DumpDir writes every record to dir, creating it if needed.
func DumpDir(ctx context.Context, dir string, src exporter, log *slog.Logger) (Report, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Report{}, fmt.Errorf("archive.DumpDir: %w", err)
	}
	return Dump(ctx, osfs.New(dir), src, log)
}

// LoadDir reads every *.json record in dir and imports them.
func LoadDir(ctx context.Context, dir string, dst importer, log *slog.Logger) (Report, error) {
	if _, err := os.Stat(dir); err != nil {
		return Report{}, fmt.Errorf("archive.LoadDir: %w", err)
	}
	return Load(ctx, osfs.New(dir), dst, log)
}

// Dump writes one <word>.json file per record at the root of fs. A record
// that cannot be written is logged and left out of Succeeded.
func Dump(ctx context.Context, fs billy.Filesystem, src exporter, log *slog.Logger) (Report, error) {
	records, err := src.Export(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("archive.Dump: %w", err)
	}

	rep := Report{Total: len(records), Files: make([]string, 0, len(records))}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("archive.Dump: %w", err)
		}

		name := FileName(rec.Word)
		data, err := json.Marshal(rec)
		if err != nil {
			log.ErrorContext(ctx, "encode record", slog.String("word", rec.Word), slog.String("error", err.Error()))
			continue
		}
		if err := util.WriteFile(fs, name, data, 0o644); err != nil {
			log.ErrorContext(ctx, "write record", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		rep.Succeeded++
		rep.Files = append(rep.Files, fs.Join(fs.Root(), name))
	}
	return rep, nil
}

// Load decodes every *.json file at the root of fs, in name order, and
// imports the records in one batch. Files that fail to decode are logged
// and counted in Total only.
func Load(ctx context.Context, fs billy.Filesystem, dst importer, log *slog.Logger) (Report, error) {
	infos, err := fs.ReadDir("/")
	if err != nil {
		return Report{}, fmt.Errorf("archive.Load: %w", err)
	}

	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() || path.Ext(fi.Name()) != ext {
			continue
		}
		names = append(names, fi.Name())
	}
	sort.Strings(names)

	rep := Report{Total: len(names), Files: make([]string, 0, len(names))}
	records := make([]domain.Record, 0, len(names))
	for _, name := range names {
		data, err := util.ReadFile(fs, name)
		if err != nil {
			log.ErrorContext(ctx, "read record", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			log.ErrorContext(ctx, "decode record", slog.String("file", name), slog.String("error", err.Error()))
			continue
		}
		records = append(records, rec)
		rep.Files = append(rep.Files, fs.Join(fs.Root(), name))
	}

	res, err := dst.Import(ctx, records)
	if err != nil {
		return rep, fmt.Errorf("archive.Load: %w", err)
	}
	rep.Succeeded = res.Imported
	return rep, nil
}

// FileName maps a word to its record file name. '%', path separators and
// NUL are percent-escaped, as is a leading dot, so distinct words never share
// a file and every word lands directly in the archive directory.
func FileName(word string) string {
	name := fileNameEscaper.Replace(word)
	if strings.HasPrefix(name, ".") {
		name = "%2E" + name[1:]
	}
	return name + ext
}

var fileNameEscaper = strings.NewReplacer("%", "%25", "/", "%2F", `\`, "%5C", "\x00", "%00")
