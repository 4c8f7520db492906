package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/parser"
	"wgslfront/internal/source"
	"wgslfront/internal/trace"
)

// ParseDirResult содержит результат парсинга одного файла
type ParseDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в FileSet
	// Unit is nil when the parse failed or the result came from the cache.
	Unit    *ast.TranslationUnit
	Summary *Summary
	Err     *parser.Error
	Failed  bool
	Cached  bool
	Bag     *diag.Bag // Диагностики
}

// DirStats aggregates a directory run.
type DirStats struct {
	Files     int
	Failed    int
	CacheHits int
}

// ListShaderFiles возвращает отсортированный список файлов с нужными расширениями.
func ListShaderFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// ParseDir парсит все шейдеры в директории параллельно; каждый файл получает
// свой парсер. Results follow the sorted file order.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, DirStats, error) {
	var stats DirStats
	files, err := ListShaderFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, stats, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, stats, nil
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "parse-dir", trace.SpanFrom(ctx))
	defer func() {
		span.WithExtra("files", strconv.Itoa(stats.Files)).
			WithExtra("failed", strconv.Itoa(stats.Failed)).
			WithExtra("cached", strconv.Itoa(stats.CacheHits)).
			End("")
	}()

	// FileSet не потокобезопасен: загружаем всё до запуска горутин
	done := opts.track("load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл даёт диагностике место 1:1
			id = fileSet.AddVirtual(path, nil)
			loadErrors[i] = err
		}
		fileIDs[i] = id
	}
	done(strconv.Itoa(len(files)) + " files")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]ParseDirResult, len(files))
	var failed, hits atomic.Int32

	done = opts.track("parse")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			res := parseOne(gctx, fileSet.Get(fileIDs[i]), loadErrors[i], opts, span.ID())
			res.Path = path
			if res.Failed {
				failed.Add(1)
			}
			if res.Cached {
				hits.Add(1)
			}
			results[i] = res
			return nil
		})
	}

	err = g.Wait()
	stats = DirStats{Files: len(files), Failed: int(failed.Load()), CacheHits: int(hits.Load())}
	done(fmt.Sprintf("%d files, %d failed, %d cached", stats.Files, stats.Failed, stats.CacheHits))
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusDone})
	return fileSet, results, stats, err
}

func parseOne(ctx context.Context, file *source.File, loadErr error, opts Options, parent uint64) ParseDirResult {
	started := time.Now()
	res := ParseDirResult{FileID: file.ID, Bag: diag.NewBag(opts.MaxDiagnostics)}

	if loadErr != nil {
		res.Failed = true
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: file.ID}, "failed to load file: "+loadErr.Error()))
		emit(opts.Progress, Event{File: file.Path, Stage: StageLoad, Status: StatusError, Err: loadErr})
		return res
	}

	key := CacheKey(file.Hash, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		found, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "parse cache read failed: "+err.Error()))
		case found:
			res.Cached = true
			res.Summary = payload.Summary
			res.Failed = payload.Failed
			restoreDiagnostics(res.Bag, file.ID, payload.Diagnostics)
			emit(opts.Progress, Event{File: file.Path, Stage: StageCache, Status: statusOf(res.Failed), Elapsed: time.Since(started)})
			return res
		}
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	unit, perr := parseFile(ctx, file, res.Bag, opts, parent)
	res.Unit, res.Err, res.Failed = unit, perr, perr != nil
	res.Summary = Summarize(unit)

	if opts.Cache != nil {
		payload := &DiskPayload{
			Path:        file.Path,
			Summary:     res.Summary,
			Failed:      res.Failed,
			Diagnostics: cacheDiagnostics(res.Bag),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			res.Bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: file.ID}, "parse cache write failed: "+err.Error()))
		}
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: statusOf(res.Failed), Err: errOrNil(perr), Elapsed: time.Since(started)})
	return res
}

func statusOf(failed bool) Status {
	if failed {
		return StatusError
	}
	return StatusDone
}

// errOrNil avoids a typed-nil *parser.Error inside the error interface.
func errOrNil(perr *parser.Error) error {
	if perr == nil {
		return nil
	}
	return perr
}

// MergeBags collects every per-file bag into one, sorted for output.
func MergeBags(results []ParseDirResult, max int) *diag.Bag {
	out := diag.NewBag(max)
	for _, r := range results {
		if r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}
