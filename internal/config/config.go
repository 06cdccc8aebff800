package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	DataDir  string // file backend location
	BankPath string // optional external question bank
	WebDir   string // optional static UI to serve at /

	FullQuestionCount   int
	ModuleQuestionCount int
	FullDuration        time.Duration
	ModuleDuration      time.Duration

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:            envOr("HTTP_ADDR", "127.0.0.1:8087"),
		DBDriver:            envOr("DB_DRIVER", "sqlite"),
		DBDSN:               envOr("DB_DSN", ""),
		DataDir:             envOr("DATA_DIR", "./data"),
		BankPath:            os.Getenv("BANK_PATH"),
		WebDir:              os.Getenv("WEB_DIR"),
		FullQuestionCount:   envInt("FULL_QUESTION_COUNT", 40),
		ModuleQuestionCount: envInt("MODULE_QUESTION_COUNT", 15),
		FullDuration:        time.Duration(envInt("FULL_EXAM_MINUTES", 65)) * time.Minute,
		ModuleDuration:      time.Duration(envInt("MODULE_EXAM_MINUTES", 20)) * time.Minute,
		CORSOrigins:         csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
