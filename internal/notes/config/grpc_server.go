package config

import (
	"fmt"
)

// GRPCConfig конфигурация gRPC сервера проверки состояния.
type GRPCConfig struct {
	Enabled bool   `yaml:"enabled" env:"NOTES_GRPC_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"NOTES_GRPC_HOST" env-default:"0.0.0.0"`
	Port    int    `yaml:"port" env:"NOTES_GRPC_PORT" env-default:"50053"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}
