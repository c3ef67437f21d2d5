package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestParseSize(t *testing.T) {
	type pair struct {
		in   string
		want image.Point
		err  bool
	}
	pairs := []pair{
		{"200x200", image.Point{200, 200}, false},
		{"320X240", image.Point{320, 240}, false},
		{"0x10", image.Point{}, true},
		{"abc", image.Point{}, true},
		{"", image.Point{}, true},
	}
	for _, p := range pairs {
		got, err := parseSize(p.in)
		if p.err {
			if err == nil {
				t.Errorf("%q: expecting error", p.in)
			}
			continue
		}
		if err != nil || got != p.want {
			t.Errorf("%q: got %v, %v", p.in, got, err)
		}
	}
}

func TestBindViperPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "dragsource.toml")
	data := "title = \"from-config\"\nsize = \"100x50\"\nlog-level = \"debug\"\n"
	if err := os.WriteFile(cfg, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DRAGSOURCE_SIZE", "300x150")

	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{"--config", cfg, "--log-level", "warn"}); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	if err := bindViper(cmd, v); err != nil {
		t.Fatal(err)
	}

	if s := v.GetString("title"); s != "from-config" {
		t.Errorf("title: %q", s)
	}
	if s := v.GetString("size"); s != "300x150" {
		t.Errorf("size: %q", s)
	}
	if s := v.GetString("log-level"); s != "warn" {
		t.Errorf("log-level: %q", s)
	}
	// default
	if s := v.GetString("log-format"); s != "auto" {
		t.Errorf("log-format: %q", s)
	}
}

func TestBindViperBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "dragsource.toml")
	if err := os.WriteFile(cfg, []byte("title = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{"--config", cfg}); err != nil {
		t.Fatal(err)
	}
	if err := bindViper(cmd, viper.New()); err == nil {
		t.Fatal("expecting error")
	}
}

//----------

func TestWithout(t *testing.T) {
	got := without([]string{"/a", "/b", "/a", "/c"}, "/a")
	if len(got) != 2 || got[0] != "/b" || got[1] != "/c" {
		t.Fatalf("got %v", got)
	}
}

func TestFilesWatcherGone(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.txt")
	f2 := filepath.Join(dir, "b.txt")
	for _, f := range []string{f1, f2} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fw, err := newFilesWatcher()
	if err != nil {
		t.Skip(err)
	}
	gone := make(chan string, 4)
	fw.OnGone = func(name string) { gone <- name }
	fw.SetFiles([]string{f1, f2})
	go fw.EventLoop()
	defer fw.Close()

	if err := os.Remove(f2); err != nil {
		t.Fatal(err)
	}
	select {
	case name := <-gone:
		if name != f2 {
			t.Fatalf("got %v", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout")
	}
}
