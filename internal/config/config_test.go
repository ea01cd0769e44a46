package config

import "testing"

func validConfig() *Config {
	return &Config{
		Port:                "8000",
		Env:                 "development",
		DatabaseURL:         "postgres://localhost/healthlens",
		NLPServiceURL:       "http://localhost:8090",
		NLPTimeoutSeconds:   30,
		MinSimilarityScore:  0.5,
		MaxRelatedQuestions: 5,
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}
}

func TestValidate_MissingNLPServiceURL(t *testing.T) {
	cfg := validConfig()
	cfg.NLPServiceURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing NLP_SERVICE_URL")
	}
}

func TestValidate_SimilarityOutOfRange(t *testing.T) {
	for _, score := range []float64{-0.1, 1.1} {
		cfg := validConfig()
		cfg.MinSimilarityScore = score
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for MIN_SIMILARITY_SCORE %v", score)
		}
	}
}

func TestValidate_SimilarityBoundaries(t *testing.T) {
	for _, score := range []float64{0, 0.5, 1} {
		cfg := validConfig()
		cfg.MinSimilarityScore = score
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error for MIN_SIMILARITY_SCORE %v: %v", score, err)
		}
	}
}

func TestValidate_NonPositiveMaxRelated(t *testing.T) {
	cfg := validConfig()
	cfg.MaxRelatedQuestions = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for MAX_RELATED_QUESTIONS 0")
	}
}

func TestValidate_ProductionRequiresAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing OPENAI_API_KEY in production")
	}
	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIsDev(t *testing.T) {
	cfg := validConfig()
	if !cfg.IsDev() {
		t.Error("expected IsDev true for ENV=development")
	}
	cfg.Env = "production"
	if cfg.IsDev() {
		t.Error("expected IsDev false for ENV=production")
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction true")
	}
}
