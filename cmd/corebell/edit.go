package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sqweek/dialog"

	"corebell/internal/agent"
	"corebell/internal/cli"
	"corebell/internal/commands"
	"corebell/internal/config"
	"corebell/internal/env"
	"corebell/internal/fonts"
	"corebell/internal/googlefonts"
	"corebell/internal/graphics"
	"corebell/internal/input"
	"corebell/internal/llm"
	"corebell/internal/logger"
	"corebell/internal/music"
	"corebell/internal/physics"
	"corebell/internal/primitives"
	"corebell/internal/scene"
	"corebell/internal/terminal"
)

// runEdit opens the editor window and blocks until it closes.
func runEdit(opts cli.EditOptions) error {
	if err := env.Load(opts.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
	}
	prefs, cfgErr := config.Load(opts.ConfigFile)
	log := logger.New(prefs.LogFile)
	log.SetLevel(logger.ParseLevel(prefs.LogLevel))
	if cfgErr != nil {
		log.Warn("%v (using defaults)", cfgErr)
	}
	savePrefs := func() {
		if err := config.Save(opts.ConfigFile, prefs); err != nil {
			log.Error("%v", err)
		}
	}

	renderer := graphics.NewRenderer()
	gizmo := graphics.NewGizmo()
	cfg := scene.Config{Renderer: renderer, Gizmo: gizmo, Log: log, SceneFile: prefs.SceneFile}
	if prefs.Physics {
		world := physics.NewWorld()
		world.SetFloor(0)
		cfg.Physics = world
	}
	ed := scene.New(cfg)
	for _, err := range primitives.Apply(ed.Registry, prefs.PrimitivesDir) {
		log.Warn("%v", err)
	}

	reg := commands.NewRegistry()
	commands.RegisterEditor(reg, ed, commands.Dirs{Primitives: prefs.PrimitivesDir})
	term := terminal.New(log, reg)
	app := graphics.NewApp(ed, renderer, gizmo, term)
	app.View.SetGridVisible(prefs.GridVisible)
	app.Debug.SetShowFPS(prefs.ShowFPS)
	app.Debug.SetShowMemAlloc(prefs.ShowMemAlloc)
	if err := app.UI.LoadCSS(prefs.Stylesheet); err != nil {
		log.Warn("stylesheet: %v", err)
	}
	if prefs.Font != "" {
		if path, err := fonts.Find(prefs.Font); err != nil {
			log.Warn("%v", err)
		} else {
			app.SetFont(path)
		}
	}

	var model atomic.Value
	model.Store(prefs.AIModel)
	getModel := func() string { return model.Load().(string) }

	spotify, spotifyErr := music.New(context.Background(), music.Config{
		ClientID:     env.Lookup("SPOTIFY_CLIENT_ID"),
		ClientSecret: env.Lookup("SPOTIFY_CLIENT_SECRET"),
		Market:       prefs.MusicMarket,
	})

	commands.RegisterApp(reg, log, commands.AppHooks{
		Grid: func(show bool) {
			app.View.SetGridVisible(show)
			prefs.GridVisible = show
			savePrefs()
		},
		FPS: func(show bool) {
			app.Debug.SetShowFPS(show)
			prefs.ShowFPS = show
			savePrefs()
		},
		MemAlloc: func(show bool) {
			app.Debug.SetShowMemAlloc(show)
			prefs.ShowMemAlloc = show
			savePrefs()
		},
		Fullscreen: graphics.SetFullscreen,
		Model:      getModel,
		SetModel: func(name string) error {
			p, _ := llm.ProviderFor(name)
			model.Store(name)
			prefs.AIModel = name
			savePrefs()
			log.Info("provider: %s", p)
			return nil
		},
		Mood: func(name string) error {
			mood, err := music.ParseMood(name)
			if err != nil {
				return err
			}
			if spotifyErr != nil {
				return spotifyErr
			}
			log.Info("finding %s music...", mood)
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				tracks, err := spotify.Recommend(ctx, mood, 5)
				ed.Post(func() {
					if err != nil {
						log.Error("%v", err)
						return
					}
					for _, t := range tracks {
						log.Info("  %s", t)
					}
				})
			}()
			return nil
		},
		Font: func(name string) error {
			path, err := fonts.Find(name)
			if err == nil {
				app.SetFont(path)
				prefs.Font = name
				savePrefs()
				log.Info("font: %s", path)
				return nil
			}
			if !errors.Is(err, fonts.ErrNotFound) || fonts.IsFont(name) {
				return err
			}
			log.Info("%s is not installed, fetching it from Google Fonts...", name)
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()
				path, err := googlefonts.New().Fetch(ctx, name, fonts.BaseDirs()[0])
				ed.Post(func() {
					if err != nil {
						log.Error("%v", err)
						return
					}
					app.SetFont(path)
					prefs.Font = name
					savePrefs()
					log.Info("font saved to %s", path)
				})
			}()
			return nil
		},
		ImportModel:  renderer.ImportModel,
		ClearImports: renderer.ClearImports,
	})

	router := llm.NewRouter(llm.Keys{
		OpenAI:      env.Lookup("OPENAI_API_KEY"),
		Groq:        env.Lookup("GROQ_API_KEY"),
		HuggingFace: env.Lookup("HF_TOKEN", "HUGGINGFACE_API_KEY"),
		OllamaURL:   env.Lookup("OLLAMA_HOST"),
	})
	ai := agent.New(router, getModel, log)
	agent.RegisterSceneHandlers(ai, ed, reg)
	term.OnNaturalLanguage = func(line string) { ai.Submit(ed, line) }

	app.Hooks = input.Hooks{
		Save: func() { saveDialog(ed, log) },
		Open: func() { openDialog(reg, log) },
	}

	if opts.Scene != "" {
		if err := reg.Execute([]string{"load", opts.Scene}); err != nil {
			log.Error("%v", err)
		}
	}
	log.Info("corebell ready: ESC opens the terminal, \"cmd help\" lists commands")
	graphics.Run(graphics.Window{Title: "Corebell", Width: 1280, Height: 720, Fullscreen: opts.Fullscreen}, app.Update, app.Draw)
	return nil
}

func saveDialog(ed *scene.Editor, log *logger.Logger) {
	path, err := dialog.File().Filter("Scene Files", "json").Title("Save Scene").Save()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			log.Error("save dialog: %v", err)
		}
		return
	}
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}
	if _, err := ed.SaveFile(path); err != nil {
		log.Error("%v", err)
	}
}

func openDialog(reg *commands.Registry, log *logger.Logger) {
	path, err := dialog.File().Filter("Scenes and bundles", "json", "zip").Title("Open Scene").Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			log.Error("open dialog: %v", err)
		}
		return
	}
	if err := reg.Execute([]string{"load", path}); err != nil {
		log.Error("%v", err)
	}
}
