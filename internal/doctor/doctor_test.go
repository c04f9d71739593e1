package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/progzone122/kff/internal/repository"
)

func fakeLookPath(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

type stubRegistry struct {
	entries []repository.Entry
	err     error
}

func (s stubRegistry) Fetch(ctx context.Context) ([]repository.Entry, error) {
	return s.entries, s.err
}

func statuses(s Section) []Status {
	var out []Status
	for _, c := range s.Checks {
		out = append(out, c.Status)
	}
	return out
}

func TestCheckKSDK_NotSet(t *testing.T) {
	s := CheckKSDK("")
	if diff := cmp.Diff([]Status{StatusMiss}, statuses(s)); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckKSDK_ReadsCrossFileHead(t *testing.T) {
	ksdk := t.TempDir()
	content := "[binaries]\nc = 'arm-gcc'\ncpp = 'arm-g++'\nar = 'arm-ar'\nstrip = 'arm-strip'\n[host_machine]\nsystem = 'linux'\n"
	if err := os.WriteFile(filepath.Join(ksdk, MesonCrossFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s := CheckKSDK(ksdk)
	if diff := cmp.Diff([]Status{StatusOK, StatusOK}, statuses(s)); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
	want := []string{"[binaries]", "c = 'arm-gcc'", "cpp = 'arm-g++'", "ar = 'arm-ar'", "strip = 'arm-strip'", "..."}
	if diff := cmp.Diff(want, s.Checks[1].Detail); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckKSDK_Problems(t *testing.T) {
	empty := t.TempDir()
	if err := os.WriteFile(filepath.Join(empty, MesonCrossFile), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ksdk string
		want []Status
	}{
		{"missing dir", filepath.Join(t.TempDir(), "nope"), []Status{StatusFail}},
		{"no cross file", t.TempDir(), []Status{StatusOK, StatusFail}},
		{"empty cross file", empty, []Status{StatusOK, StatusFail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, statuses(CheckKSDK(tt.ksdk))); diff != "" {
				t.Errorf("statuses mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadFirstLines_Short(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := ReadFirstLines(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckTemplates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"gtk2", "sdl"} {
		if err := os.MkdirAll(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	s := CheckTemplates(dir)
	if len(s.Checks) != 1 || s.Checks[0].Status != StatusOK {
		t.Fatalf("unexpected checks: %+v", s.Checks)
	}
	if !strings.Contains(s.Checks[0].Message, "2 cached template(s)") {
		t.Errorf("message = %q", s.Checks[0].Message)
	}

	missing := CheckTemplates(filepath.Join(dir, "absent"))
	if missing.Checks[0].Status != StatusInfo {
		t.Errorf("missing dir status = %v, want INFO", missing.Checks[0].Status)
	}
}

func TestCheckBinaries(t *testing.T) {
	s := CheckBinaries(DefaultBinaries, fakeLookPath("git", "ninja"))
	if diff := cmp.Diff([]Status{StatusOK, StatusMiss, StatusOK}, statuses(s)); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
	if s.Checks[0].Message != "git found at /usr/bin/git" {
		t.Errorf("message = %q", s.Checks[0].Message)
	}
}

func TestCheckRegistry(t *testing.T) {
	ok := CheckRegistry(context.Background(), stubRegistry{entries: []repository.Entry{{Name: "gtk2"}}})
	if ok.Checks[0].Status != StatusOK || !strings.Contains(ok.Checks[0].Message, "1 template(s)") {
		t.Errorf("unexpected check: %+v", ok.Checks[0])
	}

	bad := CheckRegistry(context.Background(), stubRegistry{err: repository.ErrRegistryUnavailable})
	if bad.Checks[0].Status != StatusFail {
		t.Errorf("status = %v, want FAIL", bad.Checks[0].Status)
	}
}

func TestCheckManifest(t *testing.T) {
	valid := CheckManifest(filepath.Join("..", "manifest", "testdata", "valid-template.json"))
	if valid.Checks[0].Status != StatusOK {
		t.Errorf("valid manifest: %+v", valid.Checks[0])
	}

	withSchema := CheckManifest(filepath.Join("..", "manifest", "testdata", "valid-schema-ref.json"))
	if withSchema.Checks[0].Status != StatusOK {
		t.Errorf("manifest with $schema: %+v", withSchema.Checks[0])
	}

	invalid := CheckManifest(filepath.Join("..", "manifest", "testdata", "invalid-bool-default.json"))
	if invalid.Checks[0].Status != StatusFail || len(invalid.Checks[0].Detail) == 0 {
		t.Errorf("invalid manifest: %+v", invalid.Checks[0])
	}

	dup := CheckManifest(filepath.Join("..", "manifest", "testdata", "invalid-duplicate-question.json"))
	if dup.Checks[0].Status != StatusFail {
		t.Errorf("duplicate question names should fail: %+v", dup.Checks[0])
	}

	missing := CheckManifest(filepath.Join(t.TempDir(), "template.json"))
	if missing.Checks[0].Status != StatusFail {
		t.Errorf("missing manifest: %+v", missing.Checks[0])
	}
}

func TestRun_SelectsSections(t *testing.T) {
	r := Run(context.Background(), Options{
		TemplatesDir: t.TempDir(),
		LookPath:     fakeLookPath("git", "meson", "ninja"),
	})
	if len(r.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(r.Sections))
	}
	if !r.Failed() {
		t.Error("unset KSDK should fail the report")
	}

	r = Run(context.Background(), Options{
		KSDK:          t.TempDir(),
		LookPath:      fakeLookPath(),
		Registry:      stubRegistry{},
		CheckRegistry: true,
		ManifestPath:  filepath.Join("..", "manifest", "testdata", "valid-template.json"),
	})
	if len(r.Sections) != 5 {
		t.Fatalf("got %d sections, want 5", len(r.Sections))
	}
}

func TestRender_Plain(t *testing.T) {
	r := &Report{Sections: []Section{{
		Title: "Toolchain check:",
		Checks: []Check{
			{Status: StatusOK, Message: "git found at /usr/bin/git"},
			{Status: StatusMiss, Message: "meson not found"},
			{Status: StatusOK, Message: "meson-crosscompile.txt:", Detail: []string{"[binaries]"}},
		},
	}}}

	var buf bytes.Buffer
	Render(&buf, r, false)

	want := "--- kff doctor ---\n" +
		"Toolchain check:\n" +
		"  [ OK ] git found at /usr/bin/git\n" +
		"  [MISS] meson not found\n" +
		"  [ OK ] meson-crosscompile.txt:\n" +
		"         [binaries]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusTags(t *testing.T) {
	want := map[Status]string{
		StatusOK:   "[ OK ]",
		StatusInfo: "[INFO]",
		StatusWarn: "[WARN]",
		StatusMiss: "[MISS]",
		StatusFail: "[FAIL]",
	}
	for s, tag := range want {
		if s.Tag() != tag {
			t.Errorf("%d.Tag() = %q, want %q", s, s.Tag(), tag)
		}
	}
}
