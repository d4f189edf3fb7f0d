package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/mrsobakin/battleships/internal/config"
	"github.com/mrsobakin/battleships/internal/stats"
)

type Config struct {
	Addr string `env:"BATTLESHIP_ADDR" envDefault:"127.0.0.1:4239"`
	// Zero means twice the number of CPUs.
	Jobs         int    `env:"BATTLESHIP_JOBS"`
	StatsFile    string `env:"BATTLESHIP_STATS_FILE"    envDefault:"stats.txt"`
	StatsBackend string `env:"BATTLESHIP_STATS_BACKEND" envDefault:"text"`
	LogLevel     string `env:"BATTLESHIP_LOG_LEVEL"     envDefault:"info"`
}

// ParseConfig reads the environment; a positional argument overrides the
// listen address.
func ParseConfig(args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	if len(args) >= 1 {
		cfg.Addr = args[0]
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.NumCPU() * 2
	}

	return cfg, nil
}

func main() {
	cfg, err := ParseConfig(os.Args[1:])
	if err != nil {
		config.Exitf(1, "Error: %v", err)
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		config.Exitf(1, "Error: %v", err)
	}

	store, closer, err := stats.Open(cfg.StatsBackend, cfg.StatsFile)
	if err != nil {
		config.Exitf(1, "Error: %v", err)
	}
	defer closer.Close()

	router := gin.Default()

	s := NewServer(store, cfg.Jobs, logger)

	s.RegisterEndpoints(router)

	fmt.Println(router.Run(cfg.Addr))
}
