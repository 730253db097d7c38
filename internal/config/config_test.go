package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "engine.json"))
	if err != nil {
		t.Fatal(err)
	}
	if p != Default() {
		t.Errorf("Load(missing) = %+v, want %+v", p, Default())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.json")
	want := Default()
	want.ShowFPS = true
	want.GridVisible = false
	want.AIModel = "llama3"
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	os.WriteFile(path, []byte(`{"show_fps": true}`), 0644)
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !p.ShowFPS || !p.GridVisible || p.SceneFile != "scene.json" {
		t.Errorf("Load = %+v", p)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("COREBELL_SHOW_MEMALLOC", "true")
	t.Setenv("COREBELL_SCENE_FILE", "level.json")
	p, err := Load(filepath.Join(t.TempDir(), "engine.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.ShowMemAlloc || p.SceneFile != "level.json" {
		t.Errorf("Load = %+v", p)
	}
}

func TestInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	os.WriteFile(path, []byte(`{not json`), 0644)
	p, err := Load(path)
	if err == nil {
		t.Error("want error for invalid file")
	}
	if p != Default() {
		t.Errorf("Load = %+v, want defaults", p)
	}
}
