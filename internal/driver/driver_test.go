package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"wgslfront/internal/diag"
	"wgslfront/internal/observ"
	"wgslfront/internal/trace"
)

const goodShader = `const scale = 2.0;

@fragment
fn main() -> @location(0) vec4<f32> {
    return vec4<f32>(scale);
}
`

const badShader = "fn broken( {\n}\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) last(file string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].File == file {
			return s.events[i], true
		}
	}
	return Event{}, false
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.wgsl", "let x = 1 $ 0x;\n/* open")

	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res.Tokens); n == 0 || res.Tokens[n-1].Kind.String() != "end" {
		t.Fatalf("tokens = %v", res.Tokens)
	}
	var codes []string
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code.ID())
	}
	if got := strings.Join(codes, ","); got != "LEX1001,LEX1003,LEX1002" {
		t.Errorf("codes = %s", got)
	}

	if _, err := Tokenize(context.Background(), filepath.Join(dir, "missing.wgsl"), Options{}); err == nil {
		t.Errorf("missing file accepted")
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.wgsl", goodShader)
	bad := writeFile(t, dir, "bad.wgsl", badShader)

	timer := observ.NewTimer()
	res, err := Parse(context.Background(), good, Options{Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if res.Unit == nil || res.Err != nil || res.Bag.HasErrors() {
		t.Fatalf("good file failed: %v", res.Err)
	}
	if len(timer.Report().Phases) != 2 {
		t.Errorf("phases = %+v", timer.Report().Phases)
	}

	res, err = Parse(context.Background(), bad, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Unit != nil || res.Err == nil {
		t.Fatalf("bad file parsed")
	}
	if !res.Bag.HasErrors() || res.Bag.Items()[0].Code != res.Err.Code {
		t.Errorf("error not in bag: %+v", res.Bag.Items())
	}
}

func TestParseTraceSpans(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "good.wgsl", goodShader)

	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Parse(ctx, path, Options{}); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	if len(names) != 2 || names[0] != "parse" || !strings.HasPrefix(names[1], "parse:") {
		t.Errorf("spans = %v", names)
	}
}

func TestListShaderFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.wgsl", "")
	writeFile(t, dir, "a.wgsl", "")
	writeFile(t, dir, "sub/c.wgsl", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, ".git/d.wgsl", "")
	writeFile(t, dir, "e.shader", "")

	files, err := ListShaderFiles(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	if got := strings.Join(rel, ","); got != "a.wgsl,b.wgsl,sub/c.wgsl" {
		t.Errorf("files = %s", got)
	}

	files, err = ListShaderFiles(dir, []string{".shader"})
	if err != nil || len(files) != 1 {
		t.Errorf("custom extension: %v %v", files, err)
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.wgsl", "b.wgsl", "c.wgsl", "d.wgsl"} {
		writeFile(t, dir, name, goodShader)
	}
	bad := writeFile(t, dir, "e.wgsl", badShader)

	sink := &recordingSink{}
	fs, results, stats, err := ParseDir(context.Background(), dir, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Files != 5 || stats.Failed != 1 || stats.CacheHits != 0 {
		t.Errorf("stats = %+v", stats)
	}
	for i, r := range results {
		if fs.Get(r.FileID).Path != filepath.ToSlash(filepath.Clean(r.Path)) {
			t.Errorf("result %d: path %s, file %s", i, r.Path, fs.Get(r.FileID).Path)
		}
		if r.Path == bad {
			if !r.Failed || r.Unit != nil || r.Err == nil {
				t.Errorf("bad file result = %+v", r)
			}
			continue
		}
		if r.Failed || r.Unit == nil || r.Summary == nil {
			t.Errorf("%s failed: %v", r.Path, r.Err)
		}
	}
	if ev, ok := sink.last(bad); !ok || ev.Status != StatusError || ev.Err == nil {
		t.Errorf("bad file event = %+v", ev)
	}
	if ev, ok := sink.last(results[0].Path); !ok || ev.Status != StatusDone || ev.Err != nil {
		t.Errorf("good file event = %+v", ev)
	}

	bag := MergeBags(results, 0)
	if bag.Len() != 1 || bag.Items()[0].Code == diag.UnknownCode {
		t.Errorf("merged = %+v", bag.Items())
	}
}

func TestParseDirEmpty(t *testing.T) {
	fs, results, stats, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || fs == nil || results != nil || stats.Files != 0 {
		t.Errorf("empty dir: %v %v %+v", results, err, stats)
	}
}

func TestParseDirCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.wgsl", goodShader)
	writeFile(t, dir, "bad.wgsl", badShader)

	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	_, first, stats, err := ParseDir(context.Background(), dir, opts)
	if err != nil || stats.CacheHits != 0 {
		t.Fatalf("first run: %+v %v", stats, err)
	}
	_, second, stats, err := ParseDir(context.Background(), dir, opts)
	if err != nil || stats.CacheHits != 2 || stats.Failed != 1 {
		t.Fatalf("second run: %+v %v", stats, err)
	}

	for i := range first {
		a, b := first[i], second[i]
		if !b.Cached || b.Unit != nil {
			t.Errorf("%s not served from cache", b.Path)
		}
		if a.Failed != b.Failed || a.Bag.Len() != b.Bag.Len() {
			t.Errorf("%s: cached result differs", b.Path)
		}
		for j, d := range a.Bag.Items() {
			c := b.Bag.Items()[j]
			if d.Code != c.Code || d.Message != c.Message || d.Primary != c.Primary || len(d.Notes) != len(c.Notes) {
				t.Errorf("%s: diagnostic %d = %+v, want %+v", b.Path, j, c, d)
			}
		}
		if a.Summary != nil && (b.Summary == nil || len(a.Summary.Decls) != len(b.Summary.Decls)) {
			t.Errorf("%s: summary lost", b.Path)
		}
	}

	// другой лимит вложенности даёт другой ключ
	_, _, stats, err = ParseDir(context.Background(), dir, Options{Cache: cache, MaxBraceNesting: 8})
	if err != nil || stats.CacheHits != 0 {
		t.Errorf("options ignored by cache key: %+v", stats)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	_, _, stats, _ = ParseDir(context.Background(), dir, opts)
	if stats.CacheHits != 0 {
		t.Errorf("hits after DropAll = %d", stats.CacheHits)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey([32]byte{1, 2, 3}, Options{})

	var out DiskPayload
	if found, err := cache.Get(key, &out); found || err != nil {
		t.Fatalf("empty cache: %v %v", found, err)
	}
	in := &DiskPayload{
		Path:    "x.wgsl",
		Summary: &Summary{Decls: []DeclSummary{{Kind: "fn", Name: "main", Stage: "compute", Deps: []string{"buf"}}}},
		Diagnostics: []CachedDiagnostic{{
			Severity: uint8(diag.SevError), Code: uint16(diag.SynRedefinition), Message: "m",
			Start: 3, End: 4, Notes: []CachedNote{{Start: 1, End: 2, Msg: "n"}},
		}},
		Failed: true,
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	found, err := cache.Get(key, &out)
	if !found || err != nil {
		t.Fatalf("get: %v %v", found, err)
	}
	if out.Path != "x.wgsl" || !out.Failed || out.Summary.EntryPoints()[0] != "compute main" || out.Diagnostics[0].Notes[0].Msg != "n" {
		t.Errorf("payload = %+v", out)
	}

	var nilCache *DiskCache
	if err := nilCache.Put(key, in); err != nil {
		t.Errorf("nil cache put: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.wgsl", `enable dual_source_blending;
requires pointer_composite_access;
@group(0) @binding(0) var<storage, read_write> buf: array<u32>;
@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    buf[id.x] = helper(id.x);
}
fn helper(x: u32) -> u32 { return x * 2u; }
`)
	res, err := Parse(context.Background(), path, Options{})
	if err != nil || res.Err != nil {
		t.Fatalf("parse: %v %v", err, res.Err)
	}
	s := Summarize(res.Unit)
	if len(s.Decls) != 3 || s.Decls[1].Stage != "compute" || strings.Join(s.Decls[1].Deps, ",") != "buf,helper" {
		t.Errorf("decls = %+v", s.Decls)
	}
	if strings.Join(s.Enable, ",") != "dual_source_blending" || strings.Join(s.Requires, ",") != "pointer_composite_access" {
		t.Errorf("extensions = %v %v", s.Enable, s.Requires)
	}
	if got := s.EntryPoints(); len(got) != 1 || got[0] != "compute main" {
		t.Errorf("entry points = %v", got)
	}
	if Summarize(nil) != nil {
		t.Errorf("nil unit summarized")
	}
}

func TestWriteTimingsJSON(t *testing.T) {
	timer := observ.NewTimer()
	timer.Track("parse")("1 file")

	var buf bytes.Buffer
	if err := WriteTimingsJSON(&buf, "", "a.wgsl", timer); err != nil {
		t.Fatal(err)
	}
	var got timingPayload
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Kind != "pipeline" || got.Path != "a.wgsl" || len(got.Phases) != 1 || got.Phases[0].Note != "1 file" {
		t.Errorf("payload = %+v", got)
	}
}
