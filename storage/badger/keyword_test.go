package badger

import (
	"context"
	"testing"

	"github.com/poiesic/triagit/core"
)

func TestKeywordAddAndList(t *testing.T) {
	reportRepo, keywordRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { keywordRepo.Close(); reportRepo.Close(); backend.Close() }()

	ctx := context.Background()

	entries := []*core.KeywordEntry{
		{Keyword: "fever", Source: core.KeywordSourceAuto},
		{Keyword: "cough", Source: core.KeywordSourceAuto},
	}

	inserted, err := keywordRepo.AddKeywords(ctx, entries...)
	if err != nil {
		t.Fatalf("Failed to add keywords: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("Expected 2 inserted, got %d", len(inserted))
	}
	for _, e := range inserted {
		if e.Id == 0 {
			t.Fatal("Expected content-based ID to be set")
		}
		if e.CreatedAt.IsZero() {
			t.Fatal("Expected CreatedAt to be set")
		}
	}

	all, err := keywordRepo.AllKeywords(ctx)
	if err != nil {
		t.Fatalf("Failed to list keywords: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 keywords, got %d", len(all))
	}
}

func TestKeywordDuplicatesIgnored(t *testing.T) {
	reportRepo, keywordRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { keywordRepo.Close(); reportRepo.Close(); backend.Close() }()

	ctx := context.Background()

	first, err := keywordRepo.AddKeywords(ctx, &core.KeywordEntry{Keyword: "migraine", Source: core.KeywordSourceAuto})
	if err != nil {
		t.Fatalf("Failed to add keyword: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("Expected 1 inserted, got %d", len(first))
	}

	// Same keyword again, different source
	second, err := keywordRepo.AddKeywords(ctx, &core.KeywordEntry{Keyword: "migraine", Source: core.KeywordSourceSeed})
	if err != nil {
		t.Fatalf("Failed to re-add keyword: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("Expected duplicate to be skipped, got %d inserted", len(second))
	}

	all, err := keywordRepo.AllKeywords(ctx)
	if err != nil {
		t.Fatalf("Failed to list keywords: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 keyword, got %d", len(all))
	}
	if all[0].Source != core.KeywordSourceAuto {
		t.Fatalf("Expected original source to win, got '%s'", all[0].Source)
	}
}
