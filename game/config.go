package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Gameplay constants, all expressed per tick.
const (
	PlayerSpeed = 5.0
	BulletSpeed = 10.0
	EnemySpeed  = 2.0

	// EnemySpawnChance is the probability of one enemy spawning on a given tick.
	EnemySpawnChance = 0.02

	// SpawnOffset is how far outside the screen edge new enemies appear.
	SpawnOffset = 20.0

	MaxHealth    = 100.0
	MaxArmor     = 100.0
	StartingAmmo = 30
)

// Config holds game configuration
type Config struct {
	// ScreenWidth is the drawing surface width in pixels. Zero means the
	// monitor width at startup.
	ScreenWidth int `yaml:"screen_width"`

	// ScreenHeight is the drawing surface height in pixels. Zero means the
	// monitor height at startup.
	ScreenHeight int `yaml:"screen_height"`

	// TPS is the fixed number of simulation ticks per second
	TPS int `yaml:"tps"`

	// Seed for the simulation RNG. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`

	// AssetDir is an on-disk directory holding the sprites. Empty uses the
	// embedded sprites.
	AssetDir string `yaml:"asset_dir"`

	// BackgroundPath and BulletPath are relative to the asset root
	BackgroundPath string `yaml:"background_path"`
	BulletPath     string `yaml:"bullet_path"`

	// SVG sprites are rasterized to these sizes
	BackgroundTileSize int `yaml:"background_tile_size"`
	BulletSpriteSize   int `yaml:"bullet_sprite_size"`

	// Debug enables debug logging
	Debug bool `yaml:"debug"`

	// ProfileSlowTicks captures a CPU profile when the achieved tick rate drops
	ProfileSlowTicks bool   `yaml:"profile_slow_ticks"`
	ProfilesDir      string `yaml:"profiles_dir"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:        1024,
		ScreenHeight:       768,
		TPS:                60,
		BackgroundPath:     "sprites/background-tile.svg",
		BulletPath:         "sprites/bullet.svg",
		BackgroundTileSize: 64,
		BulletSpriteSize:   8,
		ProfilesDir:        "profiles",
	}
}

// Environment variables that override the config file.
const (
	envWidth    = "BATTLE_WIDTH"
	envHeight   = "BATTLE_HEIGHT"
	envSeed     = "BATTLE_SEED"
	envAssetDir = "BATTLE_ASSET_DIR"
	envDebug    = "BATTLE_DEBUG"
)

// LoadConfig builds a Config from the defaults, an optional YAML file and the
// environment. A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// Missing .env is fine
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envWidth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envWidth, v, err)
		}
		c.ScreenWidth = n
	}
	if v := os.Getenv(envHeight); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envHeight, v, err)
		}
		c.ScreenHeight = n
	}
	if v := os.Getenv(envSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envSeed, v, err)
		}
		c.Seed = n
	}
	if v := os.Getenv(envAssetDir); v != "" {
		c.AssetDir = v
	}
	if v := os.Getenv(envDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envDebug, v, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks the configuration for values the game cannot run with
func (c Config) Validate() error {
	if c.ScreenWidth < 0 || c.ScreenHeight < 0 {
		return fmt.Errorf("screen size must not be negative (got %dx%d)", c.ScreenWidth, c.ScreenHeight)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive (got %d)", c.TPS)
	}
	if c.BackgroundPath == "" || c.BulletPath == "" {
		return fmt.Errorf("both background and bullet asset paths are required")
	}
	if c.BackgroundTileSize <= 0 || c.BulletSpriteSize <= 0 {
		return fmt.Errorf("sprite sizes must be positive")
	}
	return nil
}

// AssetPaths returns the configured sprite locations
func (c Config) AssetPaths() AssetPaths {
	return AssetPaths{
		Background:     c.BackgroundPath,
		Bullet:         c.BulletPath,
		BackgroundSize: c.BackgroundTileSize,
		BulletSize:     c.BulletSpriteSize,
	}
}
