package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/scottfrye/dnd/internal/admin"
	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/internal/engine"
	"github.com/scottfrye/dnd/internal/engine/handlers"
	"github.com/scottfrye/dnd/internal/infrastructure/storage"
	"github.com/scottfrye/dnd/internal/scripting"
	"github.com/scottfrye/dnd/internal/server"
	"github.com/scottfrye/dnd/internal/version"
	"github.com/scottfrye/dnd/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var (
		configPath   string
		loadPath     string
		headlessRuns int
	)
	flag.StringVar(&configPath, "config", "config.yaml", "Path to YAML config")
	flag.StringVar(&loadPath, "load", "", "World save file to load on start")
	flag.IntVar(&headlessRuns, "headless", 0, "Run N simulation ticks without a server and exit")
	flag.Parse()

	logger.Log.Info("Starting world server...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	if port := os.Getenv("DND_PORT"); port != "" {
		cfg.Port = port
	}

	// 1. Мир: из сохранения или пустой
	world := domain.NewWorldState()
	if loadPath == "" && cfg.SavePath != "" {
		loadPath = cfg.SavePath
	}
	if loadPath != "" {
		loaded, err := storage.Load(loadPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Log.WithField("path", loadPath).Info("No save found, starting fresh")
			} else {
				logger.Log.Fatal("Failed to load world: ", err)
			}
		} else {
			world = loaded
		}
	}

	// 2. Боевые правила из Lua (опционально)
	var resolver handlers.CombatResolver
	if cfg.ScriptsDir != "" {
		luaEngine, err := scripting.NewEngine(cfg.ScriptsDir)
		if err != nil {
			logger.Log.Fatal("Failed to load combat scripts: ", err)
		}
		defer luaEngine.Close()
		resolver = luaEngine
		logger.Log.WithField("dir", cfg.ScriptsDir).Info("Combat scripts loaded")
	}

	// 3. Ядро
	mode := cfg.Mode
	if headlessRuns > 0 {
		mode = engine.ModeHeadless
	}
	service := engine.NewGameService(world, mode, resolver)

	// РЕЖИМ HEADLESS: прогнать тики и выйти
	if headlessRuns > 0 {
		logger.Log.Infof("Mode: headless simulation, %d ticks", headlessRuns)
		tick, err := service.RunHeadless(headlessRuns)
		if err != nil {
			logger.Log.Fatal("Headless run failed: ", err)
		}
		logger.Log.WithField("tick", tick).Info("Simulation finished")
		saveWorld(service, cfg)
		return
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 4. Сервер наблюдателей и игроков
	srv := server.New(service, admin.DefaultRegistry(), cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	saveWorld(service, cfg)
	logger.Log.Info("Done.")
}

// saveWorld пишет мир на диск, если в конфиге задан путь.
func saveWorld(service *engine.GameService, cfg engine.Config) {
	if cfg.SavePath == "" {
		return
	}
	if err := storage.SaveSnapshot(service.Snapshot(), cfg.SavePath, cfg.SaveFormat); err != nil {
		logger.Log.WithError(err).Error("Failed to save world")
		return
	}
	logger.Log.WithField("path", cfg.SavePath).Info("World saved")
}
