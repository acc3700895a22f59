// Package config loads JSON and YAML configuration. All three loaders
// panic on an unreadable or malformed input: a simulator that cannot
// read its own configuration or scenario catalog has no sensible
// degraded mode.
package config

import (
	"encoding/json"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load decodes the JSON file at filePath into a new T and returns it.
func Load[T any](filePath string) T {
	var out T

	f, err := os.Open(filePath)
	if err != nil {
		slog.Error("error al abrir el archivo de configuración",
			slog.String("filePath", filePath), slog.String("error", err.Error()))
		panic(err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		slog.Error("error al decodificar el archivo de configuración",
			slog.String("filePath", filePath), slog.String("error", err.Error()))
		panic(err)
	}

	return out
}

// LoadYAML decodes the YAML file at filePath into a new T and returns it.
func LoadYAML[T any](filePath string) T {
	var out T

	f, err := os.Open(filePath)
	if err != nil {
		slog.Error("error al abrir el catálogo YAML",
			slog.String("filePath", filePath), slog.String("error", err.Error()))
		panic(err)
	}
	defer func() { _ = f.Close() }()

	if err := yaml.NewDecoder(f).Decode(&out); err != nil {
		slog.Error("error al decodificar el catálogo YAML",
			slog.String("filePath", filePath), slog.String("error", err.Error()))
		panic(err)
	}

	return out
}

// LoadYAMLBytes decodes YAML content already in memory, used for the
// catalog embedded via go:embed.
func LoadYAMLBytes[T any](data []byte) T {
	var out T
	if err := yaml.Unmarshal(data, &out); err != nil {
		slog.Error("error al decodificar el catálogo YAML embebido",
			slog.String("error", err.Error()))
		panic(err)
	}
	return out
}
