package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source types
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Engines
const (
	EngineSparse = "sparse"
	EngineDense  = "dense"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// DefaultPostgresQuery selects one row per retweet
const DefaultPostgresQuery = `SELECT retweeter_id, author_id, retweeter_name, author_name FROM retweets`

// Config is the complete configuration of a ranking run
type Config struct {
	Iterations  int          `yaml:"iterations" validate:"min=1,max=100000"`
	Tolerance   float64      `yaml:"tolerance" validate:"min=0"`
	TopK        int          `yaml:"top_k" validate:"min=0"`
	Engine      string       `yaml:"engine" validate:"oneof=sparse dense"`
	Format      string       `yaml:"format" validate:"oneof=table json"`
	LogLevel    string       `yaml:"log_level" validate:"oneof=debug info warn warning error"`
	MetricsAddr string       `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	Source      SourceConfig `yaml:"source"`
}

// SourceConfig selects and configures where retweet records come from
type SourceConfig struct {
	Type     string         `yaml:"type" validate:"oneof=file s3 postgres"`
	Path     string         `yaml:"path"`
	S3       S3Config       `yaml:"s3"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// S3Config locates a line-delimited JSON object in S3
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Key             string `yaml:"key"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	UsePathStyle    bool   `yaml:"use_path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// PostgresConfig configures a retweets table source
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Query    string `yaml:"query"`
	MaxConns int32  `yaml:"max_conns" validate:"min=0,max=100"`
}

// Default returns the fixed-count configuration: 20 iterations, top 10,
// sparse engine, table output, records from stdin
func Default() *Config {
	return &Config{
		Iterations: 20,
		TopK:       10,
		Engine:     EngineSparse,
		Format:     FormatTable,
		LogLevel:   "info",
		Source: SourceConfig{
			Type: SourceFile,
			Path: "-",
			Postgres: PostgresConfig{
				Query:    DefaultPostgresQuery,
				MaxConns: 4,
			},
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults. LOG_LEVEL in the environment overrides the file's log level.
// The result is not validated; callers apply their overrides and then call
// Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := cfg.decode(f); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// Parse decodes YAML from data over the defaults without validating
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Redacted returns a copy safe to print, with credentials masked
func (c *Config) Redacted() *Config {
	out := *c
	if out.Source.S3.SecretAccessKey != "" {
		out.Source.S3.SecretAccessKey = "****"
	}
	if out.Source.Postgres.DSN != "" {
		out.Source.Postgres.DSN = redactDSN(out.Source.Postgres.DSN)
	}
	return &out
}

// redactDSN masks the password of a postgres URL or keyword/value DSN
func redactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); !ok {
			return dsn
		}
		// url.UserPassword would percent-encode the mask
		user := url.User(u.User.Username()).String()
		u.User = nil
		prefix := u.Scheme + "://"
		return prefix + user + ":****@" + strings.TrimPrefix(u.String(), prefix)
	}
	return redactKeywordDSN(dsn)
}

// redactKeywordDSN masks password values in key=value form. Values may be
// single-quoted with backslash escapes and may contain spaces.
func redactKeywordDSN(dsn string) string {
	const key = "password"

	var b strings.Builder
	for i := 0; i < len(dsn); {
		if strings.HasPrefix(dsn[i:], key) && (i == 0 || isSpace(dsn[i-1])) {
			j := skipSpaces(dsn, i+len(key))
			if j < len(dsn) && dsn[j] == '=' {
				b.WriteString(key + "=****")
				i = valueEnd(dsn, skipSpaces(dsn, j+1))
				continue
			}
		}
		b.WriteByte(dsn[i])
		i++
	}
	return b.String()
}

func valueEnd(s string, i int) int {
	if i < len(s) && s[i] == '\'' {
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '\'':
				return j + 1
			}
		}
		return len(s)
	}
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return i
}

func skipSpaces(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
