package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvDB       = "TYPETUTOR_DB"
	EnvLogLevel = "TYPETUTOR_LOG_LEVEL"
	EnvLogFile  = "TYPETUTOR_LOG_FILE"
	EnvLesson   = "TYPETUTOR_LESSON"
	EnvWindow   = "TYPETUTOR_CURVE_WINDOW"
)

// DefaultLogLevel is used when neither file nor environment set one.
const DefaultLogLevel = "info"

// DefaultCurveWindow is the moving average window for dashboard curves.
const DefaultCurveWindow = 5

// App is the resolved runtime configuration.
type App struct {
	DBPath      string
	LogLevel    string
	LogFile     string
	Lesson      string
	CurveWindow int
	Last        int
}

// LoadDotEnv loads variables from the given .env files that exist.
// Variables already present in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", f, err)
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Resolve layers defaults, the config file and TYPETUTOR_* variables.
func Resolve(fc FileConfig) (App, error) {
	app := App{
		DBPath:      DefaultDBPath(),
		LogLevel:    DefaultLogLevel,
		LogFile:     DefaultLogPath(),
		CurveWindow: DefaultCurveWindow,
	}
	setString(&app.DBPath, fc.Storage.DB)
	setString(&app.LogLevel, fc.Log.Level)
	setString(&app.LogFile, fc.Log.File)
	setString(&app.Lesson, fc.Practice.Lesson)
	if fc.Stats.CurveWindow != nil {
		app.CurveWindow = *fc.Stats.CurveWindow
	}
	if fc.Stats.Last != nil {
		app.Last = *fc.Stats.Last
	}

	envString(&app.DBPath, EnvDB)
	envString(&app.LogLevel, EnvLogLevel)
	envString(&app.LogFile, EnvLogFile)
	envString(&app.Lesson, EnvLesson)
	if v := os.Getenv(EnvWindow); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return App{}, fmt.Errorf("invalid %s=%q: %w", EnvWindow, v, err)
		}
		app.CurveWindow = n
	}

	if app.CurveWindow < 1 {
		return App{}, fmt.Errorf("curve-window must be >= 1")
	}
	if app.Last < 0 {
		return App{}, fmt.Errorf("last must be >= 0")
	}
	if app.DBPath == "" {
		return App{}, fmt.Errorf("database path must not be empty")
	}
	return app, nil
}

func setString(target, value *string) {
	if value == nil || *value == "" {
		return
	}
	*target = *value
}

func envString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
