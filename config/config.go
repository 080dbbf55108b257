package config

import (
    "log"
    "os"
    "strconv"
)

type Config struct {
    Port                string
    HeartbeatIntervalMs int
    MongoURI            string
    MongoDB             string
    RateLimitRPS        float64
    RateLimitBurst      int
}

func LoadConfig() *Config {
    return &Config{
        Port:                getEnv("PORT", "8000"),
        HeartbeatIntervalMs: getEnvInt("HEARTBEAT_INTERVAL_MS", 30000),
        MongoURI:            getEnv("MONGO_URI", ""),
        MongoDB:             getEnv("MONGO_DB", "auction"),
        RateLimitRPS:        float64(getEnvInt("RATE_LIMIT_RPS", 100)),
        RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 200),
    }
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
    value, exists := os.LookupEnv(key)
    if !exists {
        value = defaultValue
        log.Printf("Environment variable %s not set, using default value: %s", key, defaultValue)
    }
    return value
}

func getEnvInt(key string, defaultValue int) int {
    value, exists := os.LookupEnv(key)
    if !exists {
        return defaultValue
    }
    n, err := strconv.Atoi(value)
    if err != nil {
        log.Printf("Environment variable %s is not a number (%q), using default value: %d", key, value, defaultValue)
        return defaultValue
    }
    return n
}
