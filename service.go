// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package triagit

import (
	"context"
	"log/slog"

	"github.com/poiesic/triagit/ai"
	"github.com/poiesic/triagit/ai/openai"
	"github.com/poiesic/triagit/keyword"
	"github.com/poiesic/triagit/search"
	"github.com/poiesic/triagit/storage"
	"github.com/poiesic/triagit/storage/badger"
	"github.com/poiesic/triagit/storage/typesense"
	"github.com/poiesic/triagit/triage"
)

// Service bundles the storage backend, repositories and model provider
// behind a single handle with one Close.
type Service struct {
	backend     *badger.Backend
	reportRepo  storage.ReportRepository
	keywordRepo storage.KeywordRepository
	provider    ai.AIProvider
	logger      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig     *ai.Config
	inMemory     bool
	typesenseURL string
	typesenseKey string
}

// WithAIConfig overrides the default model provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithInMemory opens the Badger backend in memory. Intended for tests and
// throwaway environments.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithTypesenseReports stores symptom reports in a Typesense collection
// instead of the embedded Badger database. Keywords stay in Badger either
// way.
func WithTypesenseReports(serverURL, apiKey string) ServiceOption {
	return func(o *serviceOptions) {
		o.typesenseURL = serverURL
		o.typesenseKey = apiKey
	}
}

func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	keywordRepo, err := badger.NewKeywordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	var reportRepo storage.ReportRepository
	if options.typesenseURL != "" {
		reportRepo, err = typesense.NewStore(context.Background(), options.typesenseURL, options.typesenseKey)
	} else {
		reportRepo, err = badger.NewReportRepository(backend)
	}
	if err != nil {
		keywordRepo.Close()
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		reportRepo.Close()
		keywordRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:     backend,
		reportRepo:  reportRepo,
		keywordRepo: keywordRepo,
		provider:    provider,
		logger:      slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.reportRepo.Close(); err != nil {
		s.logger.Error("error closing report repository", "err", err)
		return err
	}
	if err := s.keywordRepo.Close(); err != nil {
		s.logger.Error("error closing keyword repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) ReportRepository() storage.ReportRepository {
	return s.reportRepo
}

func (s *Service) KeywordRepository() storage.KeywordRepository {
	return s.keywordRepo
}

func (s *Service) Provider() ai.AIProvider {
	return s.provider
}

// NewPipeline builds a triage pipeline on the service's repositories, with
// the keyword pre-filter wired in. Extra options are applied after.
func (s *Service) NewPipeline(opts ...triage.Option) (*triage.Pipeline, error) {
	filter := keyword.NewFilter(s.keywordRepo)
	combined := append([]triage.Option{triage.WithKeywordFilter(filter)}, opts...)
	return triage.NewPipeline(s.reportRepo, s.provider, combined...)
}

func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.reportRepo, s.provider, opts...)
}
