package main

import (
	"flag"
	"log"
	"os"

	"knn_recommender/internal/catalog"

	"gopkg.in/yaml.v3"
)

// ServerConfig 对应 configs/server.yaml
type ServerConfig struct {
	Server struct {
		Port  string `yaml:"port"`
		Debug bool   `yaml:"debug"`
	} `yaml:"server"`
	Catalog struct {
		Count int   `yaml:"count"`
		Seed  int64 `yaml:"seed"`
		// Genres 为空时使用内置的参考流派区间表
		Genres map[string]catalog.FeatureRanges `yaml:"genres"`
	} `yaml:"catalog"`
}

func loadServerConfig(path string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitServerConfig 初始化服务器配置，优先级：命令行参数 > 配置文件 > 默认值
func InitServerConfig() *ServerConfig {
	// 命令行参数
	// 默认值设置为零值，以便区分"未指定"和配置文件中的值
	configPath := flag.String("config", "configs/server.yaml", "Path to server config file")
	portFlag := flag.String("port", "", "Server port")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	countFlag := flag.Int("count", 0, "Catalog size")
	seedFlag := flag.Int64("seed", 0, "Random seed for catalog generation")
	flag.Parse()

	// 1. 初始化默认值
	serverCfg := &ServerConfig{}
	serverCfg.Server.Port = "8080"
	serverCfg.Server.Debug = false
	serverCfg.Catalog.Count = catalog.DefaultCount
	serverCfg.Catalog.Seed = catalog.DefaultSeed

	// 2. 尝试加载配置文件
	if loadedCfg, err := loadServerConfig(*configPath); err == nil {
		if loadedCfg.Server.Port != "" {
			serverCfg.Server.Port = loadedCfg.Server.Port
		}
		if loadedCfg.Server.Debug {
			serverCfg.Server.Debug = true
		}
		if loadedCfg.Catalog.Count != 0 {
			serverCfg.Catalog.Count = loadedCfg.Catalog.Count
		}
		if loadedCfg.Catalog.Seed != 0 {
			serverCfg.Catalog.Seed = loadedCfg.Catalog.Seed
		}
		if len(loadedCfg.Catalog.Genres) != 0 {
			serverCfg.Catalog.Genres = loadedCfg.Catalog.Genres
		}
	} else {
		// 默认配置文件不存在时不报错，直接使用硬编码默认值
		log.Printf("Info: Could not load config file '%s': %v. Using defaults or flags.", *configPath, err)
	}

	// 3. 应用命令行参数 (优先级最高)
	if *portFlag != "" {
		serverCfg.Server.Port = *portFlag
	}
	if *debugFlag {
		serverCfg.Server.Debug = true
	}
	if *countFlag != 0 {
		serverCfg.Catalog.Count = *countFlag
	}
	if *seedFlag != 0 {
		serverCfg.Catalog.Seed = *seedFlag
	}

	return serverCfg
}
