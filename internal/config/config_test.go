package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/storage"
)

type ConfigSuite struct {
	suite.Suite
	dir string
	env map[string]string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.env = map[string]string{}
}

func (s *ConfigSuite) getenv(key string) string {
	return s.env[key]
}

func (s *ConfigSuite) writeFile(content string) string {
	path := filepath.Join(s.dir, "queensrush.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := LoadWithEnv("", s.getenv)
	s.Require().NoError(err)

	s.Equal(8080, cfg.Server.Port)
	s.Equal(storage.TypeMemory, cfg.Storage.Type)
	s.Equal(model.GridSizeSmall, cfg.Game.GridSize)
	s.Equal(30*time.Second, cfg.Game.TurnTimeLimit)
	s.Equal(3*time.Second, cfg.Game.HintTTL)
	s.Equal(model.BotStrategySafe, cfg.Bot.Strategy)
	s.Nil(cfg.Bot.Seed)
}

func (s *ConfigSuite) TestLoadFile() {
	path := s.writeFile(`
server:
  port: 9090
storage:
  type: redis
  redis:
    url: redis://cache:6379/1
    game_ttl: 30m
game:
  grid_size: 8
  turn_time_limit: 20s
  timeout_policy: pass_turn
bot:
  strategy: random
  seed: 42
log:
  level: debug
  format: text
`)

	cfg, err := LoadWithEnv(path, s.getenv)
	s.Require().NoError(err)

	s.Equal(9090, cfg.Server.Port)
	s.Equal(15*time.Second, cfg.Server.ReadTimeout)
	s.Equal(storage.TypeRedis, cfg.Storage.Type)
	s.Equal("redis://cache:6379/1", cfg.Storage.Redis.URL)
	s.Equal(30*time.Minute, cfg.Storage.Redis.GameTTL)
	s.Equal(10, cfg.Storage.Redis.PoolSize)
	s.Equal(8, cfg.Game.GridSize)
	s.Equal(20*time.Second, cfg.Game.TurnTimeLimit)
	s.Equal(model.BotStrategyRandom, cfg.Bot.Strategy)
	s.Require().NotNil(cfg.Bot.Seed)
	s.Equal(uint64(42), *cfg.Bot.Seed)
	s.Equal("text", cfg.Log.Format)

	gameCfg := cfg.Game.DefaultGameConfig()
	s.Equal(model.TimeoutPassTurn, gameCfg.TimeoutPolicy)
	s.Equal(8, gameCfg.GridSize)

	redisCfg := cfg.Storage.RedisStorageConfig()
	s.Equal("redis://cache:6379/1", redisCfg.URL)
	s.Equal(30*time.Minute, redisCfg.GameTTL)
}

func (s *ConfigSuite) TestEnvOverridesFile() {
	path := s.writeFile("server:\n  port: 9090\n")
	s.env[EnvPort] = "7070"
	s.env[EnvStorageType] = "REDIS"
	s.env[EnvRedisURL] = "redis://env:6379"
	s.env[EnvBotSeed] = "7"
	s.env[EnvHintTTL] = "5s"

	cfg, err := LoadWithEnv(path, s.getenv)
	s.Require().NoError(err)

	s.Equal(7070, cfg.Server.Port)
	s.Equal(storage.TypeRedis, cfg.Storage.Type)
	s.Equal("redis://env:6379", cfg.Storage.Redis.URL)
	s.Equal(uint64(7), *cfg.Bot.Seed)
	s.Equal(5*time.Second, cfg.Game.HintTTL)
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := LoadWithEnv(filepath.Join(s.dir, "missing.yaml"), s.getenv)
	s.ErrorIs(err, os.ErrNotExist)
}

func (s *ConfigSuite) TestMalformedFile() {
	path := s.writeFile("server: [unclosed")
	_, err := LoadWithEnv(path, s.getenv)
	s.Error(err)
}

func (s *ConfigSuite) TestInvalidEnvValues() {
	s.env[EnvPort] = "eighty"
	_, err := LoadWithEnv("", s.getenv)
	s.Error(err)

	s.env = map[string]string{EnvBotSeed: "-1"}
	_, err = LoadWithEnv("", s.getenv)
	s.Error(err)
}

func (s *ConfigSuite) TestValidateCollectsErrors() {
	path := s.writeFile(`
storage:
  type: postgres
game:
  grid_size: 7
  timeout_policy: never
bot:
  strategy: minimax
`)

	_, err := LoadWithEnv(path, s.getenv)
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrInvalidGridSize)
	s.ErrorIs(err, model.ErrInvalidTimeoutPolicy)
	s.ErrorIs(err, model.ErrUnknownBotStrategy)
	s.Contains(err.Error(), "storage.type")
}

func (s *ConfigSuite) TestTurnTimeLimitRange() {
	tests := []struct {
		limit string
		valid bool
	}{
		{"0s", true},
		{"10s", true},
		{"60s", true},
		{"5s", false},
		{"90s", false},
		{"-10s", false},
	}

	for _, tt := range tests {
		path := s.writeFile("game:\n  turn_time_limit: " + tt.limit + "\n")
		cfg, err := LoadWithEnv(path, s.getenv)
		if tt.valid {
			s.Require().NoError(err, "limit %s", tt.limit)
			want, _ := time.ParseDuration(tt.limit)
			s.Equal(want, cfg.Game.TurnTimeLimit)
		} else {
			s.ErrorIs(err, model.ErrInvalidTimeLimit, "limit %s", tt.limit)
			s.Contains(err.Error(), "game.turn_time_limit")
		}
	}
}

func (s *ConfigSuite) TestLogLevel() {
	level, err := LogConfig{Level: "warn"}.SlogLevel()
	s.Require().NoError(err)
	s.Equal("WARN", level.String())

	_, err = LogConfig{Level: "loud"}.SlogLevel()
	s.Error(err)
}
