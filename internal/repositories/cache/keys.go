package cache

import "fmt"

type EntityType string

const (
	EntityTransactions EntityType = "transactions"
)

type KeyType string

const (
	KeyUser KeyType = "user"
)

const generationSuffix = "gen"

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// GenerationKey names the counter that versions the entries for value.
func GenerationKey(entity EntityType, keyType KeyType, value interface{}) string {
	return GenerateKey(entity, keyType, value) + ":" + generationSuffix
}

// VersionedKey names the entry for value at generation gen.
func VersionedKey(entity EntityType, keyType KeyType, value interface{}, gen int64) string {
	return fmt.Sprintf("%s:%s:%d", GenerateKey(entity, keyType, value), generationSuffix, gen)
}
