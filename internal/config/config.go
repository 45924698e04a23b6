package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	ChatLLM  LLMConfig      `yaml:"chat_llm"`
	RAG      RAGConfig      `yaml:"rag"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type LLMConfig struct {
	Provider       string  `yaml:"provider"` // openai or ollama
	BaseURL        string  `yaml:"base_url"`
	Key            string  `yaml:"key"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// Timeout bounds one backend call.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type RAGConfig struct {
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
	TopK         int    `yaml:"top_k"`
	DBPath       string `yaml:"db_path"`
	Collection   string `yaml:"collection"`
	InMemory     bool   `yaml:"in_memory"`
}

const (
	defaultChunkSize   = 1000
	defaultTopK        = 5
	defaultCollection  = "book_chunks"
	defaultTemperature = 0.3
	defaultMaxTokens   = 1000
	defaultTimeoutSecs = 60
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a config file, running fully
// in-memory with keyword retrieval only.
func Default() *Config {
	cfg := &Config{RAG: RAGConfig{InMemory: true}}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.RAG.ChunkSize <= 0 {
		c.RAG.ChunkSize = defaultChunkSize
	}
	if c.RAG.ChunkOverlap <= 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		c.RAG.ChunkOverlap = c.RAG.ChunkSize / 5
	}
	if c.RAG.TopK <= 0 {
		c.RAG.TopK = defaultTopK
	}
	if c.RAG.Collection == "" {
		c.RAG.Collection = defaultCollection
	}
	for _, llm := range []*LLMConfig{&c.EmbedLLM, &c.ChatLLM} {
		if llm.Temperature == 0 {
			llm.Temperature = defaultTemperature
		}
		if llm.MaxTokens == 0 {
			llm.MaxTokens = defaultMaxTokens
		}
		if llm.TimeoutSeconds == 0 {
			llm.TimeoutSeconds = defaultTimeoutSecs
		}
	}
}
