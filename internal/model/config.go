package model

import (
	"runtime"
	"time"
)

// Config holds the effective run configuration
type Config struct {
	Profile string        `yaml:"profile" mapstructure:"profile"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Kinds   KindConfig    `yaml:"kinds" mapstructure:"kinds"`
}

// ScoringConfig controls how claims are scored
type ScoringConfig struct {
	// Workers bounds parallel claim scoring. Output is identical for any value.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls what gets written
type OutputConfig struct {
	Verbose      bool `yaml:"verbose" mapstructure:"verbose"`
	WriteAuditMD bool `yaml:"write_audit_md" mapstructure:"write_audit_md"`
	Pretty       bool `yaml:"pretty" mapstructure:"pretty"`
}

// CacheConfig controls the batch result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // empty keeps the cache in memory only
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// KindConfig drives source-kind inference for sources that arrive without a kind
type KindConfig struct {
	CourtDomains      []string          `yaml:"court_domains" mapstructure:"court_domains"`
	GovernmentDomains []string          `yaml:"government_domains" mapstructure:"government_domains"`
	AcademicDomains   []string          `yaml:"academic_domains" mapstructure:"academic_domains"`
	NGODomains        []string          `yaml:"ngo_domains" mapstructure:"ngo_domains"`
	VendorDomains     []string          `yaml:"vendor_domains" mapstructure:"vendor_domains"`
	MediaDomains      []string          `yaml:"media_domains" mapstructure:"media_domains"`
	DomainMap         map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"` // exact host -> kind
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Profile: "balanced",
		Scoring: ScoringConfig{
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			WriteAuditMD: true,
			Pretty:       true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Kinds: DefaultKindConfig(),
	}
}

// DefaultKindConfig returns the built-in domain lists
func DefaultKindConfig() KindConfig {
	return KindConfig{
		CourtDomains: []string{
			"icj-cij.org",
			"icc-cpi.int",
			"echr.coe.int",
			"curia.europa.eu",
			"supremecourt.gov",
			"uscourts.gov",
			"courtlistener.com",
			"bailii.org",
		},
		GovernmentDomains: []string{
			"gov.uk",
			"europa.eu",
			"un.org",
			"ohchr.org",
			"nato.int",
			"cisa.gov",
			"ncsc.gov.uk",
		},
		AcademicDomains: []string{
			"doi.org",
			"arxiv.org",
			"jstor.org",
			"ssrn.com",
			"nature.com",
			"sciencedirect.com",
			"springer.com",
			"citizenlab.ca",
		},
		NGODomains: []string{
			"amnesty.org",
			"hrw.org",
			"icrc.org",
			"bellingcat.com",
			"accessnow.org",
			"eff.org",
		},
		VendorDomains: []string{
			"mandiant.com",
			"crowdstrike.com",
			"microsoft.com",
			"kaspersky.com",
			"eset.com",
			"symantec.com",
			"paloaltonetworks.com",
			"recordedfuture.com",
			"sentinelone.com",
			"talosintelligence.com",
		},
		MediaDomains: []string{
			"reuters.com",
			"apnews.com",
			"bbc.co.uk",
			"bbc.com",
			"nytimes.com",
			"theguardian.com",
			"washingtonpost.com",
			"ft.com",
			"aljazeera.com",
			"wired.com",
		},
	}
}
