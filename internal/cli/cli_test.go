package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (EditOptions, bool, string, error) {
	t.Helper()
	var got EditOptions
	called := false
	root := NewRootCmd(func(o EditOptions) error {
		got, called = o, true
		return nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return got, called, out.String(), err
}

func TestEditFlags(t *testing.T) {
	tests := []struct {
		args []string
		want EditOptions
	}{
		{nil, EditOptions{}},
		{[]string{"--fullscreen"}, EditOptions{Fullscreen: true}},
		{[]string{"--fullscreen", "level.json"}, EditOptions{Fullscreen: true, Scene: "level.json"}},
		{[]string{"edit", "--fullscreen", "level.json"}, EditOptions{Fullscreen: true, Scene: "level.json"}},
		{[]string{"--config", "p.yaml", "edit", "--env", "keys.env"}, EditOptions{ConfigFile: "p.yaml", EnvFile: "keys.env"}},
	}
	for _, tt := range tests {
		got, called, _, err := execute(t, tt.args...)
		if err != nil || !called {
			t.Errorf("%v: called=%v err=%v", tt.args, called, err)
			continue
		}
		if got.Fullscreen != tt.want.Fullscreen || got.Scene != tt.want.Scene {
			t.Errorf("%v: got %+v, want %+v", tt.args, got, tt.want)
		}
		if tt.want.EnvFile != "" && got.EnvFile != tt.want.EnvFile {
			t.Errorf("%v: env = %q, want %q", tt.args, got.EnvFile, tt.want.EnvFile)
		}
		if tt.want.ConfigFile == "p.yaml" && got.ConfigFile != "p.yaml" {
			t.Errorf("%v: config = %q", tt.args, got.ConfigFile)
		}
	}
}

func TestEditTooManyArgs(t *testing.T) {
	if _, called, _, err := execute(t, "a.json", "b.json"); err == nil || called {
		t.Errorf("called=%v err=%v, want arg error", called, err)
	}
}

func TestCheckCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	doc := `{"objects":[{"type":"cube","position":[0,0,0],"rotation":[0,0,0],"scale":[1,1,1],"color":"#ff0000"}]}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	_, called, out, err := execute(t, "check", path)
	if err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("check opened the editor")
	}
	if !strings.Contains(out, "cube") {
		t.Errorf("output = %q", out)
	}
}
