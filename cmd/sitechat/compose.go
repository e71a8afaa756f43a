package main

import (
	"fmt"
	"log"
	"time"

	"sitechat/internal/answer"
	"sitechat/internal/chunker"
	"sitechat/internal/config"
	"sitechat/internal/crawler"
	"sitechat/internal/domain"
	"sitechat/internal/embedding/hash"
	"sitechat/internal/embedding/openai"
	"sitechat/internal/llm"
	"sitechat/internal/service"
	"sitechat/internal/summarizer"
	chromemstore "sitechat/internal/vectorstore/chromem"
	"sitechat/internal/vectorstore/memory"
	"sitechat/internal/vectorstore/qdrant"
)

// buildService assembles the pipeline from configuration. Embedder and
// chat-model selection happens here, not inside the components.
func buildService(cfg *config.AppConfig) (*service.Service, error) {
	crawlCfg := crawler.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   secs(cfg.Crawler.TimeoutSecs),
	}
	var extractor domain.Extractor
	switch cfg.Crawler.Type {
	case "selector", "":
		extractor = crawler.NewSelectorExtractor(crawlCfg)
	case "readability":
		extractor = crawler.NewReadabilityExtractor(crawlCfg)
	default:
		return nil, fmt.Errorf("unknown crawler type: %s", cfg.Crawler.Type)
	}

	splitter, err := chunker.NewRecursiveSplitter(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	emb, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(cfg, emb)
	if err != nil {
		return nil, err
	}

	var chat answer.ChatClient
	client, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     secs(cfg.LLM.TimeoutSecs),
	})
	if err == nil {
		chat = client
	} else {
		log.Printf("chat model unavailable (%v); answers fall back to keyword matching", err)
	}

	composer := answer.NewComposer(chat)
	return service.New(extractor, splitter, emb, store, composer, summarizer.NewFrequencySummarizer(), cfg.TopK), nil
}

func buildEmbedder(cfg *config.AppConfig) (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "openai", "":
		oc := cfg.Embedder.OpenAI
		if oc == nil {
			oc = &config.OpenAIEmbedderConfig{APIKeyEnv: "OPENAI_API_KEY"}
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   secs(oc.TimeoutSecs),
		})
		if err == nil {
			return client, nil
		}
		log.Printf("embedding model unavailable (%v); using the deterministic hash fallback", err)
		return hash.NewEmbedder(), nil
	case "hash":
		return hash.NewEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedder type: %s", cfg.Embedder.Type)
	}
}

func buildStore(cfg *config.AppConfig, emb domain.Embedder) (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "chromem", "":
		return chromemstore.NewStore(cfg.VectorStore.Path, emb.Embed)
	case "memory":
		return memory.NewStore(), nil
	case "qdrant":
		qc := cfg.VectorStore.Qdrant
		if qc == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		return qdrant.NewStore(qdrant.Config{
			URL:     qc.URL,
			APIKey:  qc.APIKey,
			Timeout: secs(qc.TimeoutSecs),
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store type: %s", cfg.VectorStore.Type)
	}
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}
