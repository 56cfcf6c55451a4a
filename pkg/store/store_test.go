package store

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/atplang/atp/pkg/atperr"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pipelines.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t)
	data := []byte("atb Banana;\nrpt 3;\n")
	if err := s.Save("banana", FormatText, data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	format, got, err := s.Load("banana")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != FormatText {
		t.Errorf("format = %q", format)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("data = %q, want %q", got, data)
	}
}

func TestSaveReplaces(t *testing.T) {
	s := openTemp(t)
	if err := s.Save("p", FormatText, []byte("tua;\n")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("p", FormatBytecode, []byte{1, 2, 3}); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	format, data, err := s.Load("p")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != FormatBytecode || !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("Load = %q %v", format, data)
	}
}

func TestLoadUnknown(t *testing.T) {
	s := openTemp(t)
	_, _, err := s.Load("missing")
	if atperr.CodeOf(err) != atperr.CodeTokenArrayNotFound {
		t.Fatalf("error = %v, want TokenArrayNotFound", err)
	}
}

func TestListSorted(t *testing.T) {
	s := openTemp(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Save(name, FormatText, []byte("tua;\n")); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}
	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDelete(t *testing.T) {
	s := openTemp(t)
	if err := s.Save("p", FormatText, []byte("tua;\n")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("p"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("p"); atperr.CodeOf(err) != atperr.CodeTokenArrayNotFound {
		t.Fatalf("second Delete error = %v, want TokenArrayNotFound", err)
	}
}
